package server

import (
	"errors"
	"time"

	"coblog/internal/middleware"
	"coblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// procedure is a single RPC endpoint. Mutations carry a per-owner rate limit
// on top of the global per-IP limiter.
type procedure struct {
	handler   func(c *fiber.Ctx) (any, error)
	rateLimit *rateLimitSpec
}

type rateLimitSpec struct {
	limit  int
	window time.Duration
}

// rpcError is the error half of the response envelope.
type rpcError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (s *Server) buildProcedures() map[string]procedure {
	return map[string]procedure{
		"post.getAll":     {handler: s.GetPosts},
		"post.getBySlug":  {handler: s.GetPostBySlug},
		"post.getById":    {handler: s.GetPostByID},
		"post.getByOwner": {handler: s.GetPostsByOwner},
		"post.create": {
			handler:   s.CreatePost,
			rateLimit: &rateLimitSpec{limit: 10, window: 5 * time.Minute},
		},
		"post.update": {
			handler:   s.UpdatePost,
			rateLimit: &rateLimitSpec{limit: 30, window: 5 * time.Minute},
		},
		"post.delete": {
			handler:   s.DeletePost,
			rateLimit: &rateLimitSpec{limit: 30, window: 5 * time.Minute},
		},

		"category.getAll":    {handler: s.GetCategories},
		"category.getById":   {handler: s.GetCategoryByID},
		"category.getBySlug": {handler: s.GetCategoryBySlug},
		"category.create": {
			handler:   s.CreateCategory,
			rateLimit: &rateLimitSpec{limit: 10, window: 5 * time.Minute},
		},
		"category.update": {
			handler:   s.UpdateCategory,
			rateLimit: &rateLimitSpec{limit: 30, window: 5 * time.Minute},
		},
		"category.delete": {
			handler:   s.DeleteCategory,
			rateLimit: &rateLimitSpec{limit: 30, window: 5 * time.Minute},
		},
	}
}

// HandleRPC dispatches /api/rpc/:procedure to the registered handler and
// wraps the outcome in the response envelope: {ok:true, result} on success,
// {ok:false, error:{code, message}} on failure with the matching HTTP status.
func (s *Server) HandleRPC(c *fiber.Ctx) error {
	name := c.Params("procedure")
	proc, found := s.procedures[name]
	if !found {
		return s.respondRPCError(c, name, fiber.StatusNotFound, &rpcError{
			Code:    "NOT_FOUND",
			Message: "Unknown procedure: " + name,
		})
	}

	if proc.rateLimit != nil {
		allowed, err := middleware.CheckRateLimit(c.Context(), s.redis,
			name, rateLimitID(c), proc.rateLimit.limit, proc.rateLimit.window)
		if err != nil {
			// Fail open; the global per-IP limiter still applies.
			middleware.Logger.WarnContext(c.UserContext(),
				"rate limit check failed, failing open",
				"procedure", name, "error", err.Error())
		} else if !allowed {
			return s.respondRPCError(c, name, fiber.StatusTooManyRequests, &rpcError{
				Code:    "RATE_LIMITED",
				Message: "Too many requests, please try again later.",
			})
		}
	}

	start := time.Now()
	result, err := proc.handler(c)
	middleware.ProcedureLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		status, rpcErr := toRPCError(err)
		if status == fiber.StatusInternalServerError {
			middleware.Logger.ErrorContext(c.UserContext(), "procedure failed",
				"procedure", name, "error", err.Error())
		}
		return s.respondRPCError(c, name, status, rpcErr)
	}

	middleware.ProcedureCalls.WithLabelValues(name, "OK").Inc()
	return c.JSON(fiber.Map{
		"ok":     true,
		"result": result,
	})
}

func (s *Server) respondRPCError(c *fiber.Ctx, name string, status int, rpcErr *rpcError) error {
	middleware.ProcedureCalls.WithLabelValues(name, rpcErr.Code).Inc()
	return c.Status(status).JSON(fiber.Map{
		"ok":    false,
		"error": rpcErr,
	})
}

// toRPCError maps a service error onto the envelope. Internal details stay
// out of client responses unless the error opted in via AppError.
func toRPCError(err error) (int, *rpcError) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		rpcErr := &rpcError{
			Code:    appErr.Code,
			Message: appErr.Message,
		}
		return appErr.HTTPStatus(), rpcErr
	}
	return fiber.StatusInternalServerError, &rpcError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
	}
}

// rateLimitID keys mutation rate limits by the claimed owner id when present,
// otherwise by remote IP. The owner id is untrusted, so the IP-based global
// limiter remains the backstop.
func rateLimitID(c *fiber.Ctx) string {
	if oid := c.Get("X-Owner-ID"); oid != "" {
		return "owner:" + oid
	}
	return "ip:" + c.IP()
}
