package services

import (
	"context"
	"log/slog"

	"github.com/stabulum/stabulum/internal/core/domain"
	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
	"github.com/stabulum/stabulum/internal/middleware"
)

// BaseService provides common functionality for all services.
type BaseService struct {
	Authorizer portssvc.OrganizationAuthorizerSvc
}

// GetLogger gets the logger from context or returns the default one.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user has the required role in an organization.
// When no authorizer is configured (unit tests), access is granted.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, organizationID string, required domain.OrganizationRole) error {
	if s.Authorizer != nil {
		return s.Authorizer.AuthorizeUserAction(ctx, userID, organizationID, required)
	}
	s.LogDebug(ctx, "No organization authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("organization_id", organizationID),
		slog.String("required_role", string(required)))
	return nil
}
