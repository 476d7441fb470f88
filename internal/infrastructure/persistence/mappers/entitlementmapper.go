package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/persistence/models"
)

// EntitlementMapper handles the conversion between domain entities and persistence models
type EntitlementMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.EntitlementModel) (*entitlement.Entitlement, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *entitlement.Entitlement) (*models.EntitlementModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.EntitlementModel) ([]*entitlement.Entitlement, error)
}

type entitlementMapper struct{}

func NewEntitlementMapper() EntitlementMapper {
	return &entitlementMapper{}
}

func (m *entitlementMapper) ToEntity(model *models.EntitlementModel) (*entitlement.Entitlement, error) {
	if model == nil {
		return nil, nil
	}

	var metadata map[string]any
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entitlement metadata: %w", err)
		}
	}

	entity, err := entitlement.ReconstructEntitlement(
		model.ID,
		model.UserID,
		tier.ID(model.Tier),
		entitlement.EntitlementStatus(model.Status),
		model.ExternalSessionID,
		model.CreatedAt,
		model.ExpiresAt,
		entitlement.NotificationMarks{
			Warning48hSent: model.Warning48hSent,
			Warning24hSent: model.Warning24hSent,
			ExpiredSent:    model.ExpiredSent,
		},
		metadata,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct entitlement entity: %w", err)
	}

	return entity, nil
}

func (m *entitlementMapper) ToModel(entity *entitlement.Entitlement) (*models.EntitlementModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadata datatypes.JSON
	if md := entity.Metadata(); len(md) > 0 {
		raw, err := json.Marshal(md)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal entitlement metadata: %w", err)
		}
		metadata = datatypes.JSON(raw)
	}

	marks := entity.Marks()
	return &models.EntitlementModel{
		ID:                entity.ID(),
		UserID:            entity.UserID(),
		Tier:              string(entity.TierID()),
		Status:            entity.Status().String(),
		ExternalSessionID: entity.ExternalSessionID(),
		ExpiresAt:         entity.ExpiresAt(),
		Warning48hSent:    marks.Warning48hSent,
		Warning24hSent:    marks.Warning24hSent,
		ExpiredSent:       marks.ExpiredSent,
		Metadata:          metadata,
		CreatedAt:         entity.CreatedAt(),
	}, nil
}

func (m *entitlementMapper) ToEntities(models []*models.EntitlementModel) ([]*entitlement.Entitlement, error) {
	entities := make([]*entitlement.Entitlement, 0, len(models))

	for i, model := range models {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map model at index %d (ID %d): %w", i, model.ID, err)
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}

	return entities, nil
}

// NotificationColumn returns the flag column backing kind.
func NotificationColumn(kind entitlement.NotificationKind) (string, error) {
	switch kind {
	case entitlement.NotificationWarning48h:
		return "warning_48h_sent", nil
	case entitlement.NotificationWarning24h:
		return "warning_24h_sent", nil
	case entitlement.NotificationExpired:
		return "expired_sent", nil
	default:
		return "", fmt.Errorf("%w: %s", entitlement.ErrInvalidNotificationKind, kind)
	}
}
