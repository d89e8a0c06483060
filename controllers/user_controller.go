package controllers

import (
	"errors"
	"net/http"

	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultUserLimit = 9

type UserController struct {
	userService *services.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		userService: services.NewUserService(db),
	}
}

// GetUsers godoc
// @Summary List users
// @Description Admin only.
// @Tags users
// @Produce json
// @Param startIndex query int false "Offset" default(0)
// @Param limit query int false "Page size" default(9)
// @Param sort query string false "asc for oldest first"
// @Success 200 {object} models.UserListResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/getusers [get]
func (uc *UserController) GetUsers(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	if !caller.IsAdmin {
		fail(c, utils.HandleError(http.StatusForbidden, "You are not allowed to see all users"))
		return
	}

	response, err := uc.userService.GetUsers(
		c.Request.Context(),
		utils.ParseIntOrDefault(c.Query("startIndex"), 0),
		utils.ParseIntOrDefault(c.Query("limit"), defaultUserLimit),
		c.Query("sort"),
	)
	if err != nil {
		fail(c, utils.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetUser godoc
// @Summary Public profile
// @Tags users
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse
// @Router /user/{userID} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, err := utils.ParseID(c.Param("userID"))
	if err != nil {
		fail(c, utils.HandleError(http.StatusBadRequest, "Invalid user ID"))
		return
	}

	user, err := uc.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		uc.failLookup(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param userID path int true "User ID"
// @Param user body models.UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/update/{userID} [put]
func (uc *UserController) UpdateUser(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	id, err := utils.ParseID(c.Param("userID"))
	if err != nil || id != caller.ID {
		fail(c, utils.HandleError(http.StatusForbidden, "You are not allowed to update this user"))
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, utils.HandleError(http.StatusBadRequest, models.UpdateUserMessage(err)))
		return
	}

	user, err := uc.userService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		uc.failLookup(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Self or admin.
// @Tags users
// @Param userID path int true "User ID"
// @Success 200 {string} string
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/delete/{userID} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	id, err := utils.ParseID(c.Param("userID"))
	if err != nil || (!caller.IsAdmin && id != caller.ID) {
		fail(c, utils.HandleError(http.StatusForbidden, "You are not allowed to delete this user"))
		return
	}

	if err := uc.userService.DeleteUser(c.Request.Context(), id); err != nil {
		fail(c, utils.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, "User has been deleted")
}

func (uc *UserController) failLookup(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, utils.HandleError(http.StatusNotFound, "User not found"))
	case errors.Is(err, services.ErrDuplicateUser):
		fail(c, utils.HandleError(http.StatusConflict, "User with this email or username already exists"))
	default:
		fail(c, utils.InternalError(err))
	}
}
