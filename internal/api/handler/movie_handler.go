package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/moviesportal/movies-api/internal/api/middleware"
	"github.com/moviesportal/movies-api/internal/core/domain"
	"github.com/moviesportal/movies-api/internal/core/ports"
)

// MovieHandler handles HTTP requests for catalog operations.
type MovieHandler struct {
	service ports.MovieService
	log     zerolog.Logger
}

func NewMovieHandler(service ports.MovieService, log zerolog.Logger) *MovieHandler {
	return &MovieHandler{service: service, log: log}
}

// List handles GET /api/movies.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Success      200  {array}   movieResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, toMovieResponse(m))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/movies/:id.
//
// @Summary      Get a movie by id
// @Tags         movies
// @Produce      json
// @Param        id   path      int  true  "Movie id"
// @Success      200  {object}  movieResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	movie, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie))
}

// Create handles POST /api/movies.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      movieRequest  true  "Movie details"
// @Success      201   {object}  movieResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	req, err := bindMovie(c)
	if err != nil {
		return err
	}

	movie, err := h.service.Create(c.Request().Context(), toMovieInput(req))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/movies/"+strconv.FormatInt(movie.ID, 10))
	if p := middleware.CurrentPrincipal(c); p != nil {
		h.log.Info().Int64("movie_id", movie.ID).Str("created_by", p.Subject).Msg("movie created via api")
	}
	return c.JSON(http.StatusCreated, toMovieResponse(movie))
}

// Update handles PUT /api/movies/:id. Only title, genre and release date change.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Movie id"
// @Param        body  body      movieRequest  true  "Movie details"
// @Success      200   {object}  movieResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	req, err := bindMovie(c)
	if err != nil {
		return err
	}

	movie, err := h.service.Update(c.Request().Context(), id, toMovieInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie))
}

// Delete handles DELETE /api/movies/:id.
//
// @Summary      Delete a movie
// @Tags         movies
// @Security     BearerAuth
// @Param        id   path  int  true  "Movie id"
// @Success      200
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func movieID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid movie id")
	}
	return id, nil
}

func bindMovie(c echo.Context) (movieRequest, error) {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return req, nil
}

func toMovieInput(r movieRequest) ports.MovieInput {
	return ports.MovieInput{
		Title:            r.Title,
		PosterURL:        r.PosterURL,
		YouTubeTrailerID: r.YouTubeTrailerID,
		ReleaseDate:      r.ReleaseDate,
		Genre:            r.Genre,
		BoxOffice:        r.BoxOffice,
	}
}

func toMovieResponse(m *domain.Movie) movieResponse {
	return movieResponse{
		ID:               m.ID,
		Title:            m.Title,
		PosterURL:        m.PosterURL,
		YouTubeTrailerID: m.YouTubeTrailerID,
		ReleaseDate:      m.ReleaseDate.UTC(),
		Genre:            m.Genre,
		BoxOffice:        m.BoxOffice,
	}
}
