package postgres

import (
	"context"

	"stencil/internal/domain/entity"
	"stencil/internal/domain/repository"
	"stencil/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// otpRepository implements the domain.OTPRepository interface using GORM.
type otpRepository struct {
	db *gorm.DB
}

// NewOTPRepository is the constructor for otpRepository.
func NewOTPRepository(db *gorm.DB) repository.OTPRepository {
	return &otpRepository{db: db}
}

// FindByUserAndPurpose retrieves the single OTP record for the pair.
func (repo *otpRepository) FindByUserAndPurpose(ctx context.Context, userID uuid.UUID, purpose entity.OTPPurpose) (*entity.OTP, error) {
	var otpM model.OTPModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, purpose.String()).
		First(&otpM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOTPNotFound
		}

		return nil, errors.Wrap(err, "failed to find otp record")
	}

	return toOTPDomain(&otpM), nil
}

// Upsert atomically inserts the record or rotates the existing one for the
// same (user, purpose) pair. The unique index makes concurrent requests for
// the same pair safe; last writer wins.
func (repo *otpRepository) Upsert(ctx context.Context, otp *entity.OTP) error {
	otpM := fromOTPDomain(otp)
	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "purpose"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"code", "expiry", "is_verified", "updated_at",
			}),
		}).
		Create(otpM).Error; err != nil {
		// The owning user can vanish between the lookup and this write.
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to upsert otp record")
	}

	// On conflict the generated id is not written back, so re-read the live row.
	stored, err := repo.FindByUserAndPurpose(ctx, otp.UserID, otp.Purpose)
	if err != nil {
		return err
	}

	*otp = *stored

	return nil
}

// MarkVerified sets is_verified on the record and clears any standalone expiry.
func (repo *otpRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	res := repo.db.WithContext(ctx).
		Model(&model.OTPModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_verified": true,
			"expiry":      nil,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to mark otp verified")
	}
	if res.RowsAffected == 0 {
		return repository.ErrOTPNotFound
	}

	return nil
}

// toOTPDomain maps the persistence model back to a pure domain entity.
func toOTPDomain(otpM *model.OTPModel) *entity.OTP {
	return &entity.OTP{
		ID:         otpM.ID,
		UserID:     otpM.UserID,
		Purpose:    entity.OTPPurpose(otpM.Purpose),
		Code:       otpM.Code,
		Expiry:     otpM.Expiry,
		IsVerified: otpM.IsVerified,
		CreatedAt:  otpM.CreatedAt,
		UpdatedAt:  otpM.UpdatedAt,
	}
}

// fromOTPDomain maps a domain entity to its GORM persistence model.
func fromOTPDomain(otp *entity.OTP) *model.OTPModel {
	return &model.OTPModel{
		Base: model.Base{
			ID:        otp.ID,
			CreatedAt: otp.CreatedAt,
			UpdatedAt: otp.UpdatedAt,
		},
		UserID:     otp.UserID,
		Purpose:    otp.Purpose.String(),
		Code:       otp.Code,
		Expiry:     otp.Expiry,
		IsVerified: otp.IsVerified,
	}
}
