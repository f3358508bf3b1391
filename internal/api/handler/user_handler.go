package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twittoo/twittoo-api/internal/api/metrics"
	"github.com/twittoo/twittoo-api/internal/core/domain"
	"github.com/twittoo/twittoo-api/internal/core/ports"
)

// UserHandler handles account administration, profiles and follows.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func userID(c echo.Context) (int64, error) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	return id, nil
}

// List returns every account with live counts. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userSummaryResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]userSummaryResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserSummaryResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one account. Admin only.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  userSummaryResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	u, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserSummaryResponse(*u))
}

// Profile returns the public profile of a user with their tweets.
//
// @Summary      Get a profile
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  profileResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /users/profile/{username} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	p, err := h.service.Profile(c.Request().Context(), c.Param("username"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(p))
}

// Follow toggles whether the caller follows the user.
//
// @Summary      Toggle follow
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  followResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/follow [post]
func (h *UserHandler) Follow(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}
	res, err := h.service.ToggleFollow(c.Request().Context(), who.ID, id)
	if err != nil {
		return err
	}
	metrics.TogglesTotal.WithLabelValues("follow", metrics.ToggleState(res.Active)).Inc()
	return c.JSON(http.StatusOK, followResponse{Following: res.Active, FollowersCount: res.Count})
}

// UpdateRole changes another user's role. Admin only.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "User ID"
// @Param        body  body      roleRequest  true  "New role"
// @Success      200   {object}  roleUpdateResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	u, err := h.service.UpdateRole(c.Request().Context(), who.ID, id, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleUpdateResponse{
		Message: "user role updated successfully",
		User:    toUserSummaryResponse(*u),
	})
}

// Delete removes another user's account. Admin only. Their tweets stay.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  deleteUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}
	u, err := h.service.Delete(c.Request().Context(), who.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteUserResponse{
		Message: "user deleted successfully",
		User: deletedUserResponse{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Role:        u.Role,
		},
	})
}

// UpdateProfile replaces the caller's own profile fields.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  userSummaryResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /users/me/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.service.UpdateProfile(c.Request().Context(), who.ID, toProfile(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserSummaryResponse(*u))
}
