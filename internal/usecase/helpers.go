package usecase

import (
	"fmt"
	"slices"

	"karigar/internal/data/entity"
	"karigar/pkg/apperror"
	"karigar/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validateRequest(log *zap.Logger, op string, req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		log.Warn(op+" validation failed", zap.Any("errors", errs))
		return apperror.ValidationFields("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}
	return nil
}

func parseID(value, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperror.Validation(fmt.Sprintf("invalid %s ID %q", what, value))
	}
	return id, nil
}

func requireRole(actor utils.Actor, roles ...entity.UserRole) error {
	if slices.Contains(roles, entity.UserRole(actor.Role)) {
		return nil
	}
	return apperror.Forbidden(fmt.Sprintf("role %q is not allowed to perform this action", actor.Role))
}

func isRole(actor utils.Actor, role entity.UserRole) bool {
	return entity.UserRole(actor.Role) == role
}
