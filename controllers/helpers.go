package controllers

import (
	"errors"

	"cooldeal/pkg/resp"
	"cooldeal/services"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
)

func owner(c *gin.Context) services.CartOwner {
	return services.CartOwner{SessionKey: utils.SessionKey(c), UserID: utils.CurrentUserID(c)}
}

// fail maps service errors onto the REST envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoCustomer),
		errors.Is(err, services.ErrNotSeller),
		errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrCartNotOwned):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrProductMissing),
		errors.Is(err, services.ErrCategoryMissing),
		errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, services.ErrItemNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrDuplicateTx),
		errors.Is(err, services.ErrCouponCodeTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadySeller),
		errors.Is(err, services.ErrRoleConflict):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrCouponInvalid),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, utils.ErrUnsupportedFile):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

// message is the storefront wording for a failed form action.
func message(err error) string {
	switch {
	case errors.Is(err, services.ErrCartNotFound):
		return "Panier introuvable"
	case errors.Is(err, services.ErrCartNotOwned):
		return "Ce panier ne vous appartient pas"
	case errors.Is(err, services.ErrCartEmpty):
		return "Votre panier est vide"
	case errors.Is(err, services.ErrItemNotFound):
		return "Ce produit n'est pas dans le panier"
	case errors.Is(err, services.ErrProductMissing):
		return "Produit introuvable"
	case errors.Is(err, services.ErrOutOfStock):
		return "Stock insuffisant"
	case errors.Is(err, services.ErrCouponInvalid):
		return "Coupon invalide ou expiré"
	case errors.Is(err, services.ErrNoCustomer):
		return "Veuillez vous connecter avec un compte client"
	case errors.Is(err, services.ErrDuplicateTx):
		return "Cette transaction existe déjà"
	case errors.Is(err, services.ErrInvalidCredentials):
		return "Identifiant ou mot de passe incorrect"
	case errors.Is(err, services.ErrPasswordMismatch):
		return "Les mots de passe ne correspondent pas"
	case errors.Is(err, services.ErrPasswordTooShort):
		return "Le mot de passe est trop court"
	case errors.Is(err, services.ErrInvalidEmail):
		return "Merci de renseigner une adresse email correcte"
	case errors.Is(err, services.ErrUsernameTaken):
		return "Ce nom d'utilisateur existe déjà"
	case errors.Is(err, services.ErrEmailTaken):
		return "Cette adresse email est déjà utilisée"
	case errors.Is(err, services.ErrTokenInvalid):
		return "Lien de réinitialisation invalide ou expiré"
	case errors.Is(err, services.ErrMissingFields):
		return "Merci de renseigner correctement les champs"
	case errors.Is(err, utils.ErrUnsupportedFile):
		return "Format d'image non supporté"
	default:
		return "Une erreur est survenue"
	}
}
