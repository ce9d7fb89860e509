// Package handlers implements the HTTP handlers for the user routes.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"red-social-api/internal/config"
	"red-social-api/internal/managers"
	"red-social-api/internal/schemas"
	"red-social-api/internal/stores"
	"red-social-api/internal/utils"
)

// Extensions accepted for avatar uploads.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

const defaultRole = "role_user"

type UserHdl interface {
	Ping(c *gin.Context)
	Register(c *gin.Context)
	Login(c *gin.Context)
	Profile(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Upload(c *gin.Context)
}

type UserHandler struct {
	Store          stores.UserStore
	JWTManager     managers.JWTMgr
	MailManager    managers.MailMgr
	StorageManager managers.StorageMgr
	Validator      *utils.Validator
	Config         *config.Config
}

func NewUserHandler(store stores.UserStore, jwtManager managers.JWTMgr, mailManager managers.MailMgr,
	storageManager managers.StorageMgr, cfg *config.Config) UserHdl {
	return &UserHandler{
		Store:          store,
		JWTManager:     jwtManager,
		MailManager:    mailManager,
		StorageManager: storageManager,
		Validator:      utils.GetValidator(),
		Config:         cfg,
	}
}

// Ping echoes the authenticated caller's claims. Kept as the auth
// smoke-test route of the original API surface.
func (handler *UserHandler) Ping(c *gin.Context) {
	claims := claimsFromContext(c)
	utils.WriteAndLogResponse(c, &schemas.PingResponse{
		Message: "message sent from the user controller",
		User:    claims,
	}, http.StatusOK)
}

// Register creates a new user. A duplicate email or nick answers with
// status 200 and a conflict message, which is the documented contract.
func (handler *UserHandler) Register(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	registrationRequest := &schemas.RegistrationRequest{}
	if err := c.ShouldBindJSON(registrationRequest); err != nil {
		utils.WriteAndLogError(c, schemas.MissingFields, http.StatusBadRequest, err)
		return
	}
	if err := handler.Validator.Validate.Struct(registrationRequest); err != nil {
		utils.WriteAndLogError(c, schemas.MissingFields, http.StatusBadRequest, err)
		return
	}

	if handler.Config.VerifyEmailMX && !handler.Validator.VerifyEmail(registrationRequest.Email) {
		utils.WriteAndLogError(c, schemas.EmailUnreachable, http.StatusBadRequest,
			errors.New("email failed mx verification"))
		return
	}

	// Duplicate check, case-normalized on email and nick.
	existing, err := handler.Store.FindByEmailOrNick(ctx, registrationRequest.Email, registrationRequest.Nick)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if len(existing) > 0 {
		utils.WriteAndLogResponse(c, &schemas.ConflictResponse{
			Status:  "success",
			Message: "user already exists",
		}, http.StatusOK)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registrationRequest.Password), handler.Config.BcryptCost)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	user := &schemas.User{
		Name:     registrationRequest.Name,
		Surname:  registrationRequest.Surname,
		Nick:     registrationRequest.Nick,
		Email:    registrationRequest.Email,
		Password: string(hashedPassword),
		Role:     defaultRole,
	}

	if err := handler.Store.Insert(ctx, user); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	// Best effort, never part of the response contract.
	if err := handler.MailManager.SendWelcomeMail(user.Email, user.Name); err != nil {
		log.Warning("Welcome mail failed: ", err)
	}

	utils.WriteAndLogResponse(c, &schemas.RegisterResponse{
		Status:  "success",
		Message: "user registered successfully",
		User:    user,
	}, http.StatusOK)
}

// Login verifies the credentials against the stored hash and issues a
// signed token built from the full user record.
func (handler *UserHandler) Login(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	loginRequest := &schemas.LoginRequest{}
	if err := c.ShouldBindJSON(loginRequest); err != nil {
		utils.WriteAndLogError(c, schemas.MissingFields, http.StatusBadRequest, err)
		return
	}
	if err := handler.Validator.Validate.Struct(loginRequest); err != nil {
		utils.WriteAndLogError(c, schemas.MissingFields, http.StatusBadRequest, err)
		return
	}

	user, err := handler.Store.FindLoginByEmail(ctx, loginRequest.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginRequest.Password)); err != nil {
		utils.WriteAndLogError(c, schemas.IncorrectPassword, http.StatusBadRequest, err)
		return
	}

	// The claim set carries every identity field, so the token is built
	// from the full record rather than the login projection.
	fullUser, err := handler.Store.FindFullByEmail(ctx, loginRequest.Email)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	claims := handler.JWTManager.GenerateClaims(fullUser)
	token, err := handler.JWTManager.GenerateJWT(claims)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.LoginResponse{
		Status:  "success",
		Message: "login successful",
		User: schemas.LoginUserDTO{
			ID:   user.ID.String(),
			Name: user.Name,
			Nick: user.Nick,
		},
		Token: token,
	}, http.StatusOK)
}

// Profile returns the user identified by the path id, without the
// password hash or the role.
func (handler *UserHandler) Profile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	id := c.Param("id")

	user, err := handler.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.ProfileResponse{
		Status: "success",
		User:   user,
	}, http.StatusOK)
}

// List returns one page of users sorted by id, together with the
// pagination totals. A page with no records answers 404.
func (handler *UserHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		page = 1
	}
	itemsPerPage := handler.Config.ItemsPerPage

	users, err := handler.Store.List(ctx, page, itemsPerPage)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	total, err := handler.Store.Count(ctx)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if len(users) == 0 {
		utils.WriteAndLogError(c, schemas.NoUsersAvailable, http.StatusNotFound,
			fmt.Errorf("page %d holds no users", page))
		return
	}

	utils.WriteAndLogResponse(c, &schemas.ListResponse{
		Status:       "success",
		Users:        users,
		Page:         page,
		ItemsPerPage: itemsPerPage,
		Total:        total,
		Pages:        int(math.Ceil(float64(total) / float64(itemsPerPage))),
	}, http.StatusOK)
}

// Update merges the supplied fields into the authenticated user's
// record. Role, image and token timestamps are never mergeable; a
// duplicate email or nick belonging to another user answers with the
// documented conflict-as-success body.
func (handler *UserHandler) Update(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	claims := claimsFromContext(c)
	if claims == nil {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized,
			errors.New("no claims in request context"))
		return
	}
	userId, _ := claims["id"].(string)

	updateRequest := &schemas.UpdateRequest{}
	if err := c.ShouldBindJSON(updateRequest); err != nil {
		utils.WriteAndLogError(c, schemas.MissingFields, http.StatusBadRequest, err)
		return
	}
	if err := handler.Validator.Validate.Struct(updateRequest); err != nil {
		utils.WriteAndLogError(c, schemas.MissingFields, http.StatusBadRequest, err)
		return
	}

	// Duplicate check against other users, on whichever of email and
	// nick the request supplies.
	if updateRequest.Email != nil || updateRequest.Nick != nil {
		var email, nick string
		if updateRequest.Email != nil {
			email = *updateRequest.Email
		}
		if updateRequest.Nick != nil {
			nick = *updateRequest.Nick
		}

		existing, err := handler.Store.FindByEmailOrNick(ctx, email, nick)
		if err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		for _, other := range existing {
			if other.ID.String() != userId {
				utils.WriteAndLogResponse(c, &schemas.ConflictResponse{
					Status:  "success",
					Message: "user already exists",
				}, http.StatusOK)
				return
			}
		}
	}

	if updateRequest.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*updateRequest.Password), handler.Config.BcryptCost)
		if err != nil {
			utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
			return
		}
		hash := string(hashedPassword)
		updateRequest.Password = &hash
	}

	user, err := handler.Store.UpdateByID(ctx, userId, updateRequest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UpdateTargetMissing, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.UpdateResponse{
		Status:  "success",
		Message: "user updated successfully",
		User:    user,
	}, http.StatusOK)
}

// Upload stores the avatar file from the multipart field "file0",
// validates its extension against the whitelist and persists the image
// reference on the authenticated user. Rejected files are removed from
// disk before the error response is sent.
func (handler *UserHandler) Upload(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	claims := claimsFromContext(c)
	if claims == nil {
		utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized,
			errors.New("no claims in request context"))
		return
	}
	userId, _ := claims["id"].(string)

	fileHeader, err := c.FormFile("file0")
	if err != nil {
		utils.WriteAndLogError(c, schemas.MissingImage, http.StatusNotFound, err)
		return
	}

	originalName := filepath.Base(fileHeader.Filename)
	fileName := fmt.Sprintf("avatar-%d-%s", time.Now().UnixNano(), originalName)
	destination := filepath.Join(handler.Config.UploadDir, fileName)

	if err := os.MkdirAll(handler.Config.UploadDir, 0o755); err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}
	if err := c.SaveUploadedFile(fileHeader, destination); err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	// Extension taken from the final suffix, so multi-dot names resolve
	// to the real extension.
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if !allowedExtensions[extension] {
		if err := os.Remove(destination); err != nil {
			log.Warning("Could not remove rejected upload: ", err)
		}
		utils.WriteAndLogError(c, schemas.InvalidExtension, http.StatusNotFound,
			fmt.Errorf("extension %q not allowed", extension))
		return
	}

	if err := handler.Store.SetImage(ctx, userId, fileName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if handler.StorageManager.Enabled() {
		if err := handler.StorageManager.MirrorAvatar(ctx, destination, managers.AvatarKey(fileName)); err != nil {
			log.Warning("Avatar mirroring failed: ", err)
		}
	}

	utils.WriteAndLogResponse(c, &schemas.UploadResponse{
		Status:  "success",
		Message: "image uploaded successfully",
		User:    claims,
		File: &schemas.FileDTO{
			Field:        "file0",
			OriginalName: originalName,
			FileName:     fileName,
			Path:         destination,
			Size:         fileHeader.Size,
		},
	}, http.StatusOK)
}

// requestContext derives a bounded context for the database calls of a
// single request.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithDeadline(c.Request.Context(), time.Now().Add(10*time.Second))
}

// claimsFromContext returns the claims attached by the auth guard, or
// nil when the route was reached without it.
func claimsFromContext(c *gin.Context) jwt.MapClaims {
	claims, ok := c.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}
