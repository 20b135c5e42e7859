package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cookbook/catalog/internal/application/favorites"
	"github.com/cookbook/catalog/internal/domain/recipe"
	"github.com/cookbook/catalog/internal/domain/search"
	"github.com/cookbook/catalog/internal/ports/inbound"
	apperrors "github.com/cookbook/catalog/pkg/errors"
)

// CatalogHandlers handles catalog and favorites API requests
type CatalogHandlers struct {
	catalog   inbound.CatalogService
	favorites inbound.FavoritesService
	logger    *zap.Logger
}

// NewCatalogHandlers creates a new catalog handlers instance
func NewCatalogHandlers(
	catalog inbound.CatalogService,
	favorites inbound.FavoritesService,
	logger *zap.Logger,
) *CatalogHandlers {
	return &CatalogHandlers{
		catalog:   catalog,
		favorites: favorites,
		logger:    logger.Named("catalog-api"),
	}
}

// SearchResponse is a search result with favorite flags
type SearchResponse struct {
	Query   string               `json:"query"`
	Total   int                  `json:"total"`
	Empty   bool                 `json:"empty"`
	Message string               `json:"message,omitempty"`
	Recipes []inbound.RecipeView `json:"recipes"`
}

// RandomResponse is a random pick with its favorite flag
type RandomResponse struct {
	Found   bool                `json:"found"`
	Message string              `json:"message,omitempty"`
	Recipe  *inbound.RecipeView `json:"recipe,omitempty"`
}

// Routes mounts the catalog endpoints
func (h *CatalogHandlers) Routes(r chi.Router) {
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", h.SearchRecipes)
		r.Post("/", h.CreateRecipe)
		r.Get("/random", h.RandomRecipe)
		r.Get("/{id}", h.GetRecipe)
		r.Put("/{id}", h.UpdateRecipe)
		r.Post("/{id}/comments", h.AddComment)
		r.Get("/{id}/cook", h.Cook)
	})
	r.Get("/search/classify", h.Classify)
	r.Get("/categories", h.Categories)
	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", h.ListFavorites)
		r.Post("/{id}/toggle", h.ToggleFavorite)
	})
}

// SearchRecipes handles GET /api/v1/recipes
func (h *CatalogHandlers) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Search(r.Context(), search.Decode(r.URL.Query()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, SearchResponse{
		Query:   result.Query,
		Total:   result.Total,
		Empty:   result.Empty,
		Message: result.Message,
		Recipes: favorites.NewView(h.favorites, result.Recipes).Recipes(),
	}, "")
}

// RandomRecipe handles GET /api/v1/recipes/random
func (h *CatalogHandlers) RandomRecipe(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Random(r.Context(), search.Decode(r.URL.Query()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp := RandomResponse{Found: result.Found, Message: result.Message}
	if result.Recipe != nil {
		resp.Recipe = &favorites.NewView(h.favorites, []recipe.Recipe{*result.Recipe}).Recipes()[0]
	}
	writeData(w, http.StatusOK, resp, "")
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *CatalogHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	found, err := h.catalog.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, favorites.NewView(h.favorites, []recipe.Recipe{*found}).Recipes()[0], "")
}

// CreateRecipe handles POST /api/v1/recipes
func (h *CatalogHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.AddRecipeCommand
	if err := decodeJSON(w, r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	created, err := h.catalog.AddRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/v1/recipes/"+created.ID)
	writeData(w, http.StatusCreated, created, "Recipe added")
}

// UpdateRecipe handles PUT /api/v1/recipes/{id}
func (h *CatalogHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.UpdateRecipeCommand
	if err := decodeJSON(w, r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	cmd.RecipeID = chi.URLParam(r, "id")

	updated, err := h.catalog.UpdateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, updated, "Recipe updated")
}

// AddComment handles POST /api/v1/recipes/{id}/comments
func (h *CatalogHandlers) AddComment(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.AddCommentCommand
	if err := decodeJSON(w, r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	cmd.RecipeID = chi.URLParam(r, "id")

	comment, err := h.catalog.AddComment(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, comment, "Comment added")
}

// Cook handles GET /api/v1/recipes/{id}/cook?done=0,2
func (h *CatalogHandlers) Cook(w http.ResponseWriter, r *http.Request) {
	done, err := parseSteps(r.URL.Query().Get("done"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	session, err := h.catalog.Cook(r.Context(), chi.URLParam(r, "id"), done)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, session, "")
}

func parseSteps(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	steps := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, apperrors.NewBadRequestError("done must be a comma-separated list of step indexes")
		}
		steps = append(steps, n)
	}
	return steps, nil
}

// Classify handles GET /api/v1/search/classify?q=
func (h *CatalogHandlers) Classify(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.catalog.Classify(r.Context(), r.URL.Query().Get("q")), "")
}

// Categories handles GET /api/v1/categories
func (h *CatalogHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.catalog.Categories(r.Context()), "")
}

// ListFavorites handles GET /api/v1/favorites. Favorites whose recipe no
// longer exists are skipped.
func (h *CatalogHandlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ids := h.favorites.List()
	recipes := make([]recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		found, err := h.catalog.GetRecipe(r.Context(), id)
		if err != nil {
			if apperrors.Is(err, apperrors.CodeRecipeNotFound) {
				continue
			}
			writeError(w, r, h.logger, err)
			return
		}
		recipes = append(recipes, *found)
	}

	writeData(w, http.StatusOK, favorites.NewView(h.favorites, recipes).Recipes(), "")
}

// ToggleFavorite handles POST /api/v1/favorites/{id}/toggle
func (h *CatalogHandlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	found, err := h.catalog.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := favorites.NewView(h.favorites, []recipe.Recipe{*found}).Toggle(r.Context(), found.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, result, "")
}
