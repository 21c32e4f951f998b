package services

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"gaming_club_backend/internal/models"
)

// Catalog enumerations enforced on incoming payloads. These mirror the
// options offered by the admin and member forms.
var (
	GameGenres = []string{
		"action", "adventure", "rpg", "strategy", "simulation",
		"sports", "racing", "puzzle", "arcade", "fighting",
	}

	ProductCategories = []string{
		"accessories", "hardware", "software", "merchandise",
		"gift_cards", "subscriptions",
	}

	PaymentMethods = []string{
		"credit_card", "debit_card", "paypal", "bank_transfer",
	}

	GameStatuses = []string{
		models.GameStatusActive, models.GameStatusInactive, models.GameStatusComingSoon,
	}

	MemberRoles = []string{models.RoleUser, models.RoleAdmin}
)

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func IsValidGenre(genre string) bool { return contains(GameGenres, genre) }

func IsValidProductCategory(cat string) bool { return contains(ProductCategories, cat) }

func IsValidPaymentMethod(method string) bool { return contains(PaymentMethods, method) }

func IsValidGameStatus(status string) bool { return contains(GameStatuses, status) }

func IsValidMemberRole(role string) bool { return contains(MemberRoles, role) }

// RegisterCustomValidators installs the enum validators on gin's binding
// engine so DTOs can use them as binding tags. Call once at startup.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("game_genre", func(fl validator.FieldLevel) bool {
		return IsValidGenre(fl.Field().String())
	})
	_ = v.RegisterValidation("product_category", func(fl validator.FieldLevel) bool {
		return IsValidProductCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return IsValidPaymentMethod(fl.Field().String())
	})
	_ = v.RegisterValidation("game_status", func(fl validator.FieldLevel) bool {
		return IsValidGameStatus(fl.Field().String())
	})
	_ = v.RegisterValidation("member_role", func(fl validator.FieldLevel) bool {
		return IsValidMemberRole(fl.Field().String())
	})
}
