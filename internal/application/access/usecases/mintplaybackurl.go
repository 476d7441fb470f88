package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/reelgate-inc/reelgate/internal/application/access/dto"
	"github.com/reelgate-inc/reelgate/internal/domain/content"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

type MintPlaybackURLCommand struct {
	UserID    string
	ContentID string
	// Category is optional; when given it must agree with the catalog.
	Category string
}

// MintPlaybackURLUseCase gates the video platform behind the access decision.
type MintPlaybackURLUseCase struct {
	access  *CheckAccessUseCase
	catalog content.Catalog
	signer  PlaybackURLSigner
	ttl     time.Duration
	logger  logger.Interface
}

func NewMintPlaybackURLUseCase(
	access *CheckAccessUseCase,
	catalog content.Catalog,
	signer PlaybackURLSigner,
	ttl time.Duration,
	logger logger.Interface,
) *MintPlaybackURLUseCase {
	return &MintPlaybackURLUseCase{
		access:  access,
		catalog: catalog,
		signer:  signer,
		ttl:     ttl,
		logger:  logger,
	}
}

func (uc *MintPlaybackURLUseCase) Execute(ctx context.Context, cmd MintPlaybackURLCommand) (*dto.PlaybackResponse, error) {
	if cmd.UserID == "" {
		return nil, errors.NewValidationError("user_id is required")
	}
	if !content.IsValidID(cmd.ContentID) {
		return nil, errors.NewValidationError("invalid content_id", cmd.ContentID)
	}

	item, err := uc.catalog.Get(ctx, cmd.ContentID)
	if err != nil {
		if stderrors.Is(err, content.ErrContentNotFound) {
			return nil, errors.NewNotFoundError("content not found", cmd.ContentID)
		}
		return nil, err
	}

	if cmd.Category != "" {
		requested, err := tier.ParseCategory(cmd.Category)
		if err != nil {
			return nil, errors.NewValidationError("unknown content category", cmd.Category)
		}
		if requested != item.Category() {
			uc.logger.Warnw("playback request category disagrees with catalog",
				"user_id", cmd.UserID,
				"content_id", cmd.ContentID,
				"requested_category", requested,
				"catalog_category", item.Category(),
			)
			return nil, errors.NewValidationError("category does not match content", cmd.ContentID)
		}
	}

	decision, err := uc.access.decide(ctx, cmd.UserID, item.Category())
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		uc.logger.Infow("playback denied",
			"user_id", cmd.UserID,
			"content_id", cmd.ContentID,
			"tier", decision.Tier,
			"reason", decision.Reason,
		)
		return &dto.PlaybackResponse{Granted: false, Reason: decision.Reason}, nil
	}

	expiry := uc.ttl
	// A rental never yields a URL that outlives it.
	if decision.ExpiresAt != nil {
		if remaining := decision.ExpiresAt.Sub(uc.access.store.Now()); remaining < expiry {
			expiry = remaining
		}
	}
	if expiry < time.Second {
		expiry = time.Second
	}

	url, err := uc.signer.MintPlaybackURL(ctx, item.ID(), expiry)
	if err != nil {
		uc.logger.Errorw("video platform failed to mint playback URL",
			"user_id", cmd.UserID,
			"content_id", cmd.ContentID,
			"error", err,
		)
		return nil, errors.NewDependencyError("video platform unavailable")
	}

	uc.logger.Infow("playback URL issued",
		"user_id", cmd.UserID,
		"content_id", cmd.ContentID,
		"tier", decision.Tier,
		"ttl_seconds", int(expiry.Seconds()),
	)

	return &dto.PlaybackResponse{
		Granted:   true,
		URL:       url,
		ExpiresAt: uc.access.store.Now().Add(expiry),
		ContentID: item.ID(),
	}, nil
}
