package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/idilsaglam/toyboard/internal/model"
	"github.com/idilsaglam/toyboard/internal/store"
)

type toyHandler struct {
	store store.Store
	log   *slog.Logger
}

func (h *toyHandler) List(c echo.Context) error {
	toys, err := h.store.List(c.Request().Context())
	if err != nil {
		return h.internal(err)
	}
	return c.JSON(http.StatusOK, toys)
}

func (h *toyHandler) Get(c echo.Context) error {
	toy, err := h.store.Get(c.Request().Context(), model.ID(c.Param("id")))
	if err != nil {
		return h.lookup(err)
	}
	return c.JSON(http.StatusOK, toy)
}

func (h *toyHandler) Create(c echo.Context) error {
	var nt model.NewToy
	if err := c.Bind(&nt); err != nil {
		return err
	}
	nt.Name = strings.TrimSpace(nt.Name)
	nt.Image = strings.TrimSpace(nt.Image)
	nt.Likes = 0
	if err := c.Validate(nt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	toy, err := h.store.Create(c.Request().Context(), nt)
	if err != nil {
		return h.internal(err)
	}
	h.log.Info("toy created", slog.String("id", toy.ID.String()))
	return c.JSON(http.StatusCreated, toy)
}

func (h *toyHandler) Update(c echo.Context) error {
	var p model.ToyPatch
	if err := c.Bind(&p); err != nil {
		return err
	}
	if err := c.Validate(p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	toy, err := h.store.Update(c.Request().Context(), model.ID(c.Param("id")), p)
	if err != nil {
		return h.lookup(err)
	}
	return c.JSON(http.StatusOK, toy)
}

func (h *toyHandler) lookup(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "toy not found")
	}
	return h.internal(err)
}

func (h *toyHandler) internal(err error) error {
	h.log.Error("store failed", slog.Any("err", err))
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}
