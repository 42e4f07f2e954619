package handlers

import (
	"github.com/antonvlasov/hookah-mix-helper/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService    interfaces.UserServiceInterface
	TobaccoService interfaces.TobaccoServiceInterface
	MixService     interfaces.MixServiceInterface
}
