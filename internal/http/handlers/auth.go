package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/http/middleware"
	"travelapp/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (a *App) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := a.Users.FindByLogin(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email/username atau password salah"})
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal query user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email/username atau password salah"})
		return
	}

	token, err := middleware.IssueToken(a.JWTSecret, user.ID, user.Role, time.Now())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membuat token", nil)
		return
	}

	utils.LogEventf(middleware.GetRequestID(c), "AUTH", "login", "user_id=%d role=%s", user.ID, user.Role)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (a *App) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" || len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, username dan password (minimal 6 karakter) wajib diisi"})
		return
	}

	exists, err := a.Users.Exists(c.Request.Context(), req.Email, req.Username)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal cek user", err)
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email atau username sudah terdaftar"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal meng-hash password"})
		return
	}

	u := models.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     req.Username,
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         "user",
		Status:       "active",
	}
	id, err := a.Users.Create(c.Request.Context(), u)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menyimpan user", err)
		return
	}
	u.ID = id

	c.JSON(http.StatusCreated, gin.H{
		"message": "registrasi berhasil",
		"user":    u,
	})
}
