package controllers

import (
	"net/http"

	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostController struct {
	postService *services.PostService
	hubService  *services.HubService
}

func NewPostController(db *gorm.DB, hubService *services.HubService) *PostController {
	return &PostController{
		postService: services.NewPostService(db),
		hubService:  hubService,
	}
}

// CreatePost godoc
// @Summary Create a post
// @Description Admin only. The slug is derived from the title.
// @Tags posts
// @Accept json
// @Produce json
// @Param post body models.CreatePostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /post/create [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	if !caller.IsAdmin {
		fail(c, utils.HandleError(http.StatusForbidden, "You are not authorized to create a post"))
		return
	}

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, utils.HandleError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	// 401 rather than 400: existing clients key off this status.
	if req.Title == "" || req.Content == "" {
		fail(c, utils.HandleError(http.StatusUnauthorized, "Please provide all required fields"))
		return
	}

	post, err := pc.postService.CreatePost(c.Request.Context(), caller.ID, &req)
	if err != nil {
		fail(c, utils.InternalError(err))
		return
	}

	pc.hubService.Publish(models.EventPostCreated, post)

	c.JSON(http.StatusCreated, post)
}

// GetPosts godoc
// @Summary List posts
// @Description Filters are ANDed. searchTerm matches title or content, case-insensitively.
// @Tags posts
// @Produce json
// @Param userID query int false "Owner"
// @Param category query string false "Category"
// @Param slug query string false "Slug"
// @Param postId query int false "Post ID"
// @Param searchTerm query string false "Substring of title or content"
// @Param startIndex query int false "Offset" default(0)
// @Param limit query int false "Page size" default(9)
// @Param sort query string false "asc for oldest update first"
// @Success 200 {object} models.PostListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /post/getposts [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	filter := services.PostFilter{
		Category:   c.Query("category"),
		Slug:       c.Query("slug"),
		SearchTerm: c.Query("searchTerm"),
		StartIndex: utils.ParseIntOrDefault(c.Query("startIndex"), 0),
		Limit:      utils.ParseIntOrDefault(c.Query("limit"), services.DefaultPostLimit),
		Sort:       c.Query("sort"),
	}

	if raw := c.Query("userID"); raw != "" {
		userID, err := utils.ParseID(raw)
		if err != nil {
			fail(c, utils.HandleError(http.StatusBadRequest, "Invalid userID"))
			return
		}
		filter.UserID = &userID
	}

	if raw := c.Query("postId"); raw != "" {
		postID, err := utils.ParseID(raw)
		if err != nil {
			fail(c, utils.HandleError(http.StatusBadRequest, "Invalid postId"))
			return
		}
		filter.PostID = &postID
	}

	response, err := pc.postService.GetPosts(c.Request.Context(), filter)
	if err != nil {
		fail(c, utils.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeletePost godoc
// @Summary Delete a post
// @Description Admin, or a caller whose id equals the userID path segment.
// @Tags posts
// @Param postID path int true "Post ID"
// @Param userID path int true "User ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /post/delete/{postID}/{userID} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	// TODO: compare against the stored post's owner once clients stop relying
	// on the path userID; any caller can currently delete by naming themselves.
	if !caller.IsAdmin && utils.FormatID(caller.ID) != c.Param("userID") {
		fail(c, utils.HandleError(http.StatusForbidden, "You are not authorized to delete this post"))
		return
	}

	postID, err := utils.ParseID(c.Param("postID"))
	if err != nil {
		fail(c, utils.HandleError(http.StatusBadRequest, "Invalid postID"))
		return
	}

	if err := pc.postService.DeletePost(c.Request.Context(), postID); err != nil {
		fail(c, utils.InternalError(err))
		return
	}

	pc.hubService.Publish(models.EventPostDeleted, gin.H{"_id": postID})

	c.JSON(http.StatusNoContent, "Post has been deleted")
}

// UpdatePost godoc
// @Summary Update a post
// @Description Admin, or a caller whose id equals userID in the body. Only title, content, category and image change.
// @Tags posts
// @Accept json
// @Produce json
// @Param postID path int true "Post ID"
// @Param userID path int true "User ID"
// @Param post body models.UpdatePostRequest true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /post/update/{postID}/{userID} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, utils.HandleError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	// TODO: same owner check as DeletePost, against the body userID.
	if !caller.IsAdmin && utils.FormatID(caller.ID) != string(req.UserID) {
		fail(c, utils.HandleError(http.StatusForbidden, "You are not authorized to update this post"))
		return
	}

	postID, err := utils.ParseID(c.Param("postID"))
	if err != nil {
		fail(c, utils.HandleError(http.StatusBadRequest, "Invalid postID"))
		return
	}

	post, err := pc.postService.UpdatePost(c.Request.Context(), postID, &req)
	if err != nil {
		fail(c, utils.InternalError(err))
		return
	}

	if post != nil {
		pc.hubService.Publish(models.EventPostUpdated, post)
	}

	c.JSON(http.StatusOK, post)
}
