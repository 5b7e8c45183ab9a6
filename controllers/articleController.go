package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"article-registry-backend/database"
	"article-registry-backend/middlewares"
	"article-registry-backend/models"
	"article-registry-backend/utils"

	"github.com/gofiber/fiber/v2"
)

const defaultListLimit = 1000

// ArticleStore is the storage surface the article endpoints need. The Mongo
// implementation lives in database; tests substitute an in-memory fake.
type ArticleStore interface {
	List(ctx context.Context, search string, limit int64) ([]models.Article, error)
	Get(ctx context.Context, id string) (*models.Article, error)
	Insert(ctx context.Context, article models.Article) (*models.Article, error)
	Replace(ctx context.Context, id string, article models.Article) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, article models.Article) (bool, error)
}

// ArticleInput is the caller-facing article shape: no id, no timestamps.
// Only articleCode is required; every other field may be absent or empty.
type ArticleInput struct {
	ArticleCode   string                 `json:"articleCode" validate:"required,min=1"`
	ColorCode     string                 `json:"colorCode"`
	TreatmentName string                 `json:"treatmentName"`
	ArticleName   string                 `json:"articleName"`
	ColorName     string                 `json:"colorName"`
	Supplier      string                 `json:"supplier"`
	SupplierCode  string                 `json:"supplierCode"`
	Section       string                 `json:"section"`
	Season        string                 `json:"season"`
	SuppArtCode   string                 `json:"suppArtCode"`
	Composition   string                 `json:"composition"`
	Weave         string                 `json:"weave"`
	Stretch       string                 `json:"stretch"`
	Construction  string                 `json:"construction"`
	WeightGSM     string                 `json:"weightGSM"`
	WidthCM       string                 `json:"widthCM"`
	DyeType       string                 `json:"dyeType"`
	CareLabel     string                 `json:"careLabel"`
	BarcodeQR     string                 `json:"barcodeQR"`
	BasePriceEUR  string                 `json:"basePriceEUR"`
	ExtraFields   map[string]interface{} `json:"extraFields"`
}

// BulkImportRequest carries a batch of articles plus the import mode:
// append (default) merges into existing data, replace wipes first.
type BulkImportRequest struct {
	Articles []ArticleInput `json:"articles" validate:"dive"`
	Mode     string         `json:"mode" validate:"omitempty,oneof=append replace"`
}

type ArticleController struct {
	store ArticleStore
}

func NewArticleController(store ArticleStore) *ArticleController {
	return &ArticleController{store: store}
}

// article builds the stored document from the request body. Timestamps are
// stamped by the individual handlers.
func (in ArticleInput) article() models.Article {
	extra := in.ExtraFields
	if extra == nil {
		extra = map[string]interface{}{}
	}
	return models.Article{
		ArticleCode:   in.ArticleCode,
		ColorCode:     in.ColorCode,
		TreatmentName: in.TreatmentName,
		ArticleName:   in.ArticleName,
		ColorName:     in.ColorName,
		Supplier:      in.Supplier,
		SupplierCode:  in.SupplierCode,
		Section:       in.Section,
		Season:        in.Season,
		SuppArtCode:   in.SuppArtCode,
		Composition:   in.Composition,
		Weave:         in.Weave,
		Stretch:       in.Stretch,
		Construction:  in.Construction,
		WeightGSM:     in.WeightGSM,
		WidthCM:       in.WidthCM,
		DyeType:       in.DyeType,
		CareLabel:     in.CareLabel,
		BarcodeQR:     in.BarcodeQR,
		BasePriceEUR:  in.BasePriceEUR,
		ExtraFields:   extra,
	}
}

// GET /api/articles
func (ct *ArticleController) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}
	search := strings.TrimSpace(c.Query("search"))

	articles, err := ct.store.List(c.Context(), search, int64(limit))
	if err != nil {
		return err
	}
	return c.JSON(articles)
}

// GET /api/articles/:id
func (ct *ArticleController) Get(c *fiber.Ctx) error {
	article, err := ct.store.Get(c.Context(), c.Params("id"))
	if errors.Is(err, database.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "article not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(article)
}

// POST /api/articles
func (ct *ArticleController) Create(c *fiber.Ctx) error {
	var in ArticleInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	now := time.Now().UTC()
	article := in.article()
	article.CreatedAt = now
	article.UpdatedAt = now

	created, err := ct.store.Insert(c.Context(), article)
	if err != nil {
		return err
	}
	return c.JSON(created)
}

// PUT /api/articles/:id
func (ct *ArticleController) Update(c *fiber.Ctx) error {
	var in ArticleInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	// Full replace of all caller-writable fields; the store leaves createdAt
	// untouched, matching bulk-import behavior.
	article := in.article()
	article.UpdatedAt = time.Now().UTC()

	updated, err := ct.store.Replace(c.Context(), c.Params("id"), article)
	if errors.Is(err, database.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "article not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DELETE /api/articles/:id
func (ct *ArticleController) Delete(c *fiber.Ctx) error {
	err := ct.store.Delete(c.Context(), c.Params("id"))
	if errors.Is(err, database.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "article not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Article deleted successfully",
	})
}

// DELETE /api/articles
func (ct *ArticleController) DeleteAll(c *fiber.Ctx) error {
	deleted, err := ct.store.DeleteAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "deleted": deleted})
}

// POST /api/articles/bulk
func (ct *ArticleController) BulkImport(c *fiber.Ctx) error {
	var req BulkImportRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Context()
	if req.Mode == "replace" {
		// wipe-then-load; no rollback if a later upsert fails
		if _, err := ct.store.DeleteAll(ctx); err != nil {
			return err
		}
	}

	inserted, updated := 0, 0
	for i := range req.Articles {
		utils.NormalizeDTO(&req.Articles[i])

		now := time.Now().UTC()
		article := req.Articles[i].article()
		article.CreatedAt = now // only applied when the triple is new
		article.UpdatedAt = now

		wasInsert, err := ct.store.Upsert(ctx, article)
		if err != nil {
			// articles before i stay imported; no batch rollback
			return err
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"inserted": inserted,
		"updated":  updated,
		"total":    len(req.Articles),
	})
}
