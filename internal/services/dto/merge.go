package dto

import (
	"time"

	"gorm.io/datatypes"

	"sublet_backend/internal/models"
	"sublet_backend/pkg/apperrors"
)

// ApplyListingPatch переносит в l все переданные поля патча. Адрес, амениты и
// фото обрабатывает сервис: они требуют геокодирования или отдельных таблиц.
func ApplyListingPatch(l *models.Listing, p *PatchListingRequest) error {
	start, err := mergeDate(l.StartDate, p.StartDate, "start_date")
	if err != nil {
		return err
	}
	end, err := mergeDate(l.EndDate, p.EndDate, "end_date")
	if err != nil {
		return err
	}
	if !time.Time(start).Before(time.Time(end)) {
		return apperrors.NewValidationError("listing", "start_date must be before end_date")
	}

	gender, err := mergeGender(l.TargetGender, p.TenantGender, "tenant_gender")
	if err != nil {
		return err
	}
	if p.TenantAge.Set && !p.TenantAge.Null && (p.TenantAge.Value < 16 || p.TenantAge.Value > 120) {
		return apperrors.NewValidationError("listing", "tenant_age must be between 16 and 120")
	}
	if p.Photos.Set && !p.Photos.Null {
		for _, ph := range p.Photos.Value {
			if ph.URL == "" {
				return apperrors.NewValidationError("listing", "photo url is required")
			}
		}
	}

	l.StartDate = start
	l.EndDate = end
	l.TargetGender = gender
	l.TenantAge = MergeNullable(l.TenantAge, p.TenantAge)
	l.AskingPrice = Merge(l.AskingPrice, p.AskingPrice)
	l.BuildingTypeID = MergeNullable(l.BuildingTypeID, p.BuildingTypeID)
	l.NumBedrooms = Merge(l.NumBedrooms, p.NumBedrooms)
	l.NumBathrooms = Merge(l.NumBathrooms, p.NumBathrooms)
	l.PetFriendly = Merge(l.PetFriendly, p.PetFriendly)
	l.UtilitiesIncl = Merge(l.UtilitiesIncl, p.UtilitiesIncl)
	l.Description = Merge(l.Description, p.Description)
	return nil
}

// ApplyRenterPatch - то же для профиля арендатора, кроме адреса
func ApplyRenterPatch(r *models.RenterProfile, p *PatchRenterRequest) error {
	start, err := mergeDate(r.DesiredStartDate, p.DesiredStartDate, "desired_start_date")
	if err != nil {
		return err
	}
	end, err := mergeDate(r.DesiredEndDate, p.DesiredEndDate, "desired_end_date")
	if err != nil {
		return err
	}
	if !time.Time(start).Before(time.Time(end)) {
		return apperrors.NewValidationError("renter", "desired_start_date must be before desired_end_date")
	}

	gender, err := mergeGender(r.Gender, p.Gender, "gender")
	if err != nil {
		return err
	}

	r.DesiredStartDate = start
	r.DesiredEndDate = end
	r.Gender = gender
	r.Age = Merge(r.Age, p.Age)
	r.Budget = Merge(r.Budget, p.Budget)
	r.DesiredBedrooms = Merge(r.DesiredBedrooms, p.DesiredBedrooms)
	r.DesiredBathrooms = Merge(r.DesiredBathrooms, p.DesiredBathrooms)
	r.HasPet = Merge(r.HasPet, p.HasPet)
	r.BuildingTypeID = MergeNullable(r.BuildingTypeID, p.BuildingTypeID)
	r.Bio = Merge(r.Bio, p.Bio)
	r.IsActive = Merge(r.IsActive, p.IsActive)
	return nil
}

func mergeDate(current datatypes.Date, patch *string, field string) (datatypes.Date, error) {
	if patch == nil {
		return current, nil
	}
	t, err := ParseDate(*patch)
	if err != nil {
		return current, apperrors.NewValidationError("request", field+" must be a date in YYYY-MM-DD format")
	}
	return datatypes.Date(t), nil
}

func mergeGender(current *models.Gender, patch Optional[string], field string) (*models.Gender, error) {
	if !patch.Set {
		return current, nil
	}
	if patch.Null {
		return nil, nil
	}
	g := models.Gender(patch.Value)
	if !g.IsValid() {
		return current, apperrors.NewValidationError("request", field+" is not a valid gender")
	}
	return &g, nil
}

// GenderPtr переводит необязательную строку запроса в *models.Gender
func GenderPtr(s *string) *models.Gender {
	if s == nil {
		return nil
	}
	g := models.Gender(*s)
	return &g
}
