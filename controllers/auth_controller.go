package controllers

import (
	"errors"
	"net/http"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	userService *services.UserService
	jwtManager  *utils.JWTManager
}

func NewAuthController(db *gorm.DB, jwtManager *utils.JWTManager) *AuthController {
	return &AuthController{
		userService: services.NewUserService(db),
		jwtManager:  jwtManager,
	}
}

// Signup godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.SignupRequest true "Credentials"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/signup [post]
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, utils.HandleError(http.StatusBadRequest, "All fields are required"))
		return
	}

	user, err := ac.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			fail(c, utils.HandleError(http.StatusConflict, "User with this email or username already exists"))
			return
		}
		fail(c, utils.InternalError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
		"data":    user,
	})
}

// Signin godoc
// @Summary Sign in
// @Description Sets an HTTP-only access_token cookie and returns the token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.SigninRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/signin [post]
func (ac *AuthController) Signin(c *gin.Context) {
	var req models.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, utils.HandleError(http.StatusBadRequest, "All fields are required"))
		return
	}

	user, err := ac.userService.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, utils.HandleError(http.StatusNotFound, "User not found"))
			return
		}
		fail(c, utils.InternalError(err))
		return
	}

	if !user.CheckPassword(req.Password) {
		fail(c, utils.HandleError(http.StatusBadRequest, "Invalid password"))
		return
	}

	token, err := ac.jwtManager.GenerateJWT(user.ID, user.IsAdmin)
	if err != nil {
		fail(c, utils.HandleError(http.StatusInternalServerError, "Failed to generate token"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(ac.jwtManager.TTL().Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"data":  user,
		"token": token,
	})
}

// Signout godoc
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {string} string
// @Router /auth/signout [post]
func (ac *AuthController) Signout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, "User has been signed out")
}
