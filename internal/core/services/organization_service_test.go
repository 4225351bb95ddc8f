package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stabulum/stabulum/internal/apperrors"
	"github.com/stabulum/stabulum/internal/core/domain"
	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
	"github.com/stabulum/stabulum/internal/core/services"
	"github.com/stabulum/stabulum/internal/dto"
)

type OrganizationServiceTestSuite struct {
	suite.Suite
	mockOrgRepo     *MockOrganizationRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.OrganizationSvcFacade
	organizationID  string
	userID          string
}

func (suite *OrganizationServiceTestSuite) SetupTest() {
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewOrganizationService(suite.mockOrgRepo, suite.mockJournalRepo)
	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *OrganizationServiceTestSuite) TestCreateOrganization_SeedsAdminAndDefaultJournals() {
	ctx := context.Background()
	req := dto.CreateOrganizationRequest{Name: "Acme Ltd", BaseCurrency: "USD"}

	suite.mockOrgRepo.On("SaveOrganization", ctx, mock.AnythingOfType("domain.Organization")).Return(nil).Once()

	var savedMember domain.OrganizationMember
	suite.mockOrgRepo.On("SaveMember", ctx, mock.AnythingOfType("domain.OrganizationMember")).
		Run(func(args mock.Arguments) {
			savedMember = args.Get(1).(domain.OrganizationMember)
		}).Return(nil).Once()

	var seededTypes []domain.JournalType
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal")).
		Run(func(args mock.Arguments) {
			seededTypes = append(seededTypes, args.Get(1).(domain.Journal).JournalType)
		}).Return(nil).Times(len(domain.DefaultJournals()))

	org, err := suite.service.CreateOrganization(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(org)
	suite.Equal("Acme Ltd", org.Name)
	suite.True(org.IsActive)

	suite.Equal(suite.userID, savedMember.UserID)
	suite.Equal(domain.RoleAdmin, savedMember.Role)
	suite.Contains(seededTypes, domain.JournalGeneral)
	suite.mockOrgRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *OrganizationServiceTestSuite) TestAuthorizeUserAction_NonMemberMaskedAsNotFound() {
	ctx := context.Background()

	suite.mockOrgRepo.On("FindMember", ctx, suite.organizationID, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.organizationID, domain.RoleReadOnly)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OrganizationServiceTestSuite) TestAuthorizeUserAction_InsufficientRole() {
	ctx := context.Background()
	member := &domain.OrganizationMember{
		OrganizationID: suite.organizationID,
		UserID:         suite.userID,
		Role:           domain.RoleReadOnly,
	}

	suite.mockOrgRepo.On("FindMember", ctx, suite.organizationID, suite.userID).Return(member, nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.organizationID, domain.RoleMember)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *OrganizationServiceTestSuite) TestAuthorizeUserAction_RoleRankSatisfied() {
	ctx := context.Background()
	member := &domain.OrganizationMember{
		OrganizationID: suite.organizationID,
		UserID:         suite.userID,
		Role:           domain.RoleAdmin,
	}

	suite.mockOrgRepo.On("FindMember", ctx, suite.organizationID, suite.userID).Return(member, nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.organizationID, domain.RoleMember)

	suite.Require().NoError(err)
}

func (suite *OrganizationServiceTestSuite) TestAddMember_ExistingMemberRejected() {
	ctx := context.Background()
	actorID := uuid.NewString()
	targetID := uuid.NewString()

	admin := &domain.OrganizationMember{OrganizationID: suite.organizationID, UserID: actorID, Role: domain.RoleAdmin}
	existing := &domain.OrganizationMember{OrganizationID: suite.organizationID, UserID: targetID, Role: domain.RoleMember}

	suite.mockOrgRepo.On("FindMember", ctx, suite.organizationID, actorID).Return(admin, nil).Once()
	suite.mockOrgRepo.On("FindMember", ctx, suite.organizationID, targetID).Return(existing, nil).Once()

	err := suite.service.AddMember(ctx, suite.organizationID, dto.AddMemberRequest{UserID: targetID, Role: "MEMBER"}, actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockOrgRepo.AssertNotCalled(suite.T(), "SaveMember", mock.Anything, mock.Anything)
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
