package auth

import (
	"errors"
	"time"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateAccountRequest struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Role     models.StaffRole `json:"role"`
}

type AccountResponse struct {
	Email string           `json:"email"`
	Name  string           `json:"name"`
	Role  models.StaffRole `json:"role"`
}

func toResponse(acc models.Account) AccountResponse {
	return AccountResponse{Email: acc.Email, Name: acc.Name, Role: acc.Role}
}

// POST /api/auth/login
func LoginHandler(secret string, accounts *Accounts, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		acc, err := accounts.Authenticate(body.Email, body.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
		}

		token, err := GenerateToken(secret, acc, now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "token could not be created")
		}

		return c.JSON(fiber.Map{
			"token":   token,
			"account": toResponse(acc),
		})
	}
}

// GET /api/auth/me
func MeHandler(accounts *Accounts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, role := Actor(c)
		if acc, ok := accounts.Get(email); ok {
			return c.JSON(toResponse(acc))
		}
		// account removed after the token was issued
		name, _ := c.Locals(CtxNameKey).(string)
		return c.JSON(AccountResponse{Email: email, Name: name, Role: role})
	}
}

// POST /api/admin/accounts (Manager only)
func CreateAccountHandler(accounts *Accounts, trail *audit.Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateAccountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		acc, err := accounts.Register(body.Name, body.Email, body.Password, body.Role)
		if errors.Is(err, ErrAccountExists) {
			return fiber.NewError(fiber.StatusConflict, "an account with this email already exists")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		actor, actorRole := Actor(c)
		trail.WriteLog(audit.LogOptions{
			Actor:       actor,
			ActorRole:   actorRole,
			EntityType:  "account",
			EntityID:    acc.Email,
			Action:      models.AuditActionCreate,
			Description: "account created for " + acc.Name,
			After:       toResponse(acc),
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(acc))
	}
}

// GET /api/admin/accounts (Manager only)
func ListAccountsHandler(accounts *Accounts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list := accounts.List()
		res := make([]AccountResponse, 0, len(list))
		for _, acc := range list {
			res = append(res, toResponse(acc))
		}
		return c.JSON(res)
	}
}
