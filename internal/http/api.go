package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inkwell/internal/ai"
	"inkwell/internal/apperr"
	"inkwell/internal/auth"
	"inkwell/internal/domain"
	"inkwell/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	articles  service.ArticleService
	suggester *ai.Suggester
	auth      *auth.Service
	logger    *logrus.Logger
}

func NewHandler(users service.UserService, articles service.ArticleService, suggester *ai.Suggester, authService *auth.Service, logger *logrus.Logger) *Handler {
	return &Handler{
		users:     users,
		articles:  articles,
		suggester: suggester,
		auth:      authService,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/auth/signup", h.signup)
		api.POST("/auth/login", h.login)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		protected := api.Group("")
		protected.Use(h.auth.Middleware())
		{
			protected.POST("/articles", h.createArticle)
			protected.GET("/articles", h.listArticles)
			protected.GET("/articles/:id", h.getArticle)
			protected.PUT("/articles/:id", h.updateArticle)
			protected.DELETE("/articles/:id", h.deleteArticle)
			protected.POST("/ai/suggest", h.suggest)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}
	if missing := requireFields(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}, "email", "password"); len(missing) > 0 {
		h.writeError(c, apperr.MissingFields(missing))
		return
	}

	user, err := h.users.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": userToResponse(user)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}
	if missing := requireFields(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}, "email", "password"); len(missing) > 0 {
		h.writeError(c, apperr.MissingFields(missing))
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": userToResponse(user)})
}

type createArticleRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (h *Handler) createArticle(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		h.writeError(c, apperr.ErrInvalidCredentials)
		return
	}

	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}
	if missing := requireFields(map[string]string{
		"title":   req.Title,
		"content": req.Content,
	}, "title", "content"); len(missing) > 0 {
		h.writeError(c, apperr.MissingFields(missing))
		return
	}

	article, err := h.articles.Create(c.Request.Context(), actor, req.Title, req.Content, req.Tags)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, articleToResponse(article))
}

func (h *Handler) listArticles(c *gin.Context) {
	articles, err := h.articles.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]ArticleResponse, len(articles))
	for i := range articles {
		resp[i] = articleToResponse(&articles[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getArticle(c *gin.Context) {
	article, err := h.articles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleToResponse(article))
}

type updateArticleRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

func (h *Handler) updateArticle(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		h.writeError(c, apperr.ErrInvalidCredentials)
		return
	}

	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}

	article, err := h.articles.Update(c.Request.Context(), actor, c.Param("id"), service.ArticleUpdate{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleToResponse(article))
}

func (h *Handler) deleteArticle(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		h.writeError(c, apperr.ErrInvalidCredentials)
		return
	}

	id := c.Param("id")
	if err := h.articles.Delete(c.Request.Context(), actor, id); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": id})
}

type suggestRequest struct {
	Text string `json:"text"`
}

func (h *Handler) suggest(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		h.writeError(c, apperr.ErrInvalidCredentials)
		return
	}

	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}
	if missing := requireFields(map[string]string{"text": req.Text}, "text"); len(missing) > 0 {
		h.writeError(c, apperr.MissingFields(missing))
		return
	}

	suggestion, err := h.suggester.Suggest(c.Request.Context(), actor, req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

// requireFields returns the subset of names whose value is empty.
func requireFields(payload map[string]string, names ...string) []string {
	var missing []string
	for _, name := range names {
		if payload[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// writeError translates a domain error into the uniform JSON error contract.
// Unclassified errors are logged server-side and reported as a bare 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *apperr.ValidationError
	if errors.As(err, &vErr) {
		body := gin.H{"error": "validation_error", "message": vErr.Message}
		if len(vErr.Missing) > 0 {
			body["missing"] = vErr.Missing
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	var uErr *apperr.UpstreamError
	if errors.As(err, &uErr) {
		c.JSON(uErr.Status, gin.H{"error": "upstream_error", "message": uErr.Message})
		return
	}

	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials) || errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication_error", "message": "invalid credentials"})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "authorization_error", "message": "you do not own this article or lack admin rights"})
	case errors.Is(err, apperr.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": "email already in use"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "article not found"})
	case errors.Is(err, apperr.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id", "message": "invalid article id format"})
	default:
		if h.logger != nil {
			h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "internal server error"})
	}
}

type UserResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type ArticleResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Owner     string   `json:"owner"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

func articleToResponse(article *domain.Article) ArticleResponse {
	tags := article.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Content:   article.Content,
		Owner:     article.OwnerID,
		Tags:      tags,
		CreatedAt: article.CreatedAt.Format(time.RFC3339),
		UpdatedAt: article.UpdatedAt.Format(time.RFC3339),
	}
}
