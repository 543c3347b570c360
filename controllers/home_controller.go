package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/pricing"
)

type HomeController struct{}

const homeCacheKey = "home_content_v1"

func invalidateHomeCache() {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(context.Background(), homeCacheKey)
}

func queryStorefrontProducts(ctx context.Context, where string, limit int) ([]gin.H, error) {
	rows, err := config.DB.Query(ctx,
		productSelect+" "+where+fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT %d", limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []gin.H{}
	for rows.Next() {
		p, categoryName, err := scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, storefrontProduct(p, categoryName))
	}
	return products, rows.Err()
}

// GetHomeContent godoc
// @Summary Aggregated home page bundle
// @Description Flash sale winner, categories, featured and weekly products, collections, hero images, and site assets in one response
// @Tags Home
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/home-content [get]
func (ctrl *HomeController) GetHomeContent(c *gin.Context) {
	ctx := context.Background()

	if config.RedisClient != nil {
		if cached, err := config.RedisClient.Get(ctx, homeCacheKey).Result(); err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	// Flash sale winner with up to 8 lines.
	sales, err := queryFlashSales(ctx, "WHERE is_active = true")
	if err != nil {
		failStorage(c, "GET /api/home-content", err)
		return
	}

	var flashSale gin.H
	if winner := pricing.SelectEffectiveFlashSale(sales, time.Now()); winner != nil {
		lines, err := loadFlashSaleLines(ctx, winner.ID)
		if err != nil {
			failStorage(c, "GET /api/home-content", err)
			return
		}
		if len(lines) > 8 {
			lines = lines[:8]
		}
		saleProducts := []gin.H{}
		for _, line := range lines {
			saleProducts = append(saleProducts, flashSaleLinePayload(line))
		}
		flashSale = gin.H{
			"id":        winner.ID,
			"title":     winner.Title,
			"subtitle":  winner.Subtitle,
			"expiresAt": winner.ExpiresAt,
			"products":  saleProducts,
		}
	}

	categories, err := homeCategories(ctx)
	if err != nil {
		failStorage(c, "GET /api/home-content", err)
		return
	}

	featured, err := queryStorefrontProducts(ctx, "WHERE p.is_featured = true AND p.status = 'active'", 12)
	if err != nil {
		failStorage(c, "GET /api/home-content", err)
		return
	}
	if len(featured) == 0 {
		// Fall back to the newest active products so the section is never empty.
		featured, err = queryStorefrontProducts(ctx, "WHERE p.status = 'active'", 12)
		if err != nil {
			failStorage(c, "GET /api/home-content", err)
			return
		}
	}

	weekly, err := queryStorefrontProducts(ctx, "WHERE p.is_weekly_special = true AND p.status = 'active'", 12)
	if err != nil {
		failStorage(c, "GET /api/home-content", err)
		return
	}

	collections, err := homeCollections(ctx)
	if err != nil {
		failStorage(c, "GET /api/home-content", err)
		return
	}

	heroImages, err := heroImageURLs(ctx)
	if err != nil {
		failStorage(c, "GET /api/home-content", err)
		return
	}
	if len(heroImages) > 8 {
		heroImages = heroImages[:8]
	}

	assets, err := siteAssetMap(ctx)
	if err != nil {
		failStorage(c, "GET /api/home-content", err)
		return
	}
	siteAssets := gin.H{}
	for key, asset := range assets {
		siteAssets[key] = asset["url"]
	}

	var flashSalePayload any
	if flashSale != nil {
		flashSalePayload = flashSale
	}

	response := gin.H{
		"flashSale":        flashSalePayload,
		"heroImages":       heroImages,
		"siteAssets":       siteAssets,
		"categories":       categories,
		"featuredProducts": featured,
		"weeklyProducts":   weekly,
		"collections":      collections,
	}

	if config.RedisClient != nil {
		if jsonData, err := json.Marshal(response); err == nil {
			config.RedisClient.Set(ctx, homeCacheKey, string(jsonData), 5*time.Minute)
		}
	}

	c.JSON(200, response)
}

func homeCategories(ctx context.Context) ([]gin.H, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT c.id, c.name, COALESCE(c.image_url, ''),
		        (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)
		 FROM categories c WHERE c.is_visible = true
		 ORDER BY c.priority ASC, c.created_at DESC LIMIT 12`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []gin.H{}
	for rows.Next() {
		var id, name, imageURL string
		var count int
		if err := rows.Scan(&id, &name, &imageURL, &count); err != nil {
			continue
		}
		categories = append(categories, gin.H{
			"id":    id,
			"name":  name,
			"count": fmt.Sprintf("%d Selections", count),
			"image": imageURL,
		})
	}
	return categories, rows.Err()
}

func homeCollections(ctx context.Context) ([]gin.H, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT col.id, col.title, col.slug, COALESCE(col.image_url, ''),
		        (SELECT COUNT(*) FROM collection_products cp WHERE cp.collection_id = col.id)
		 FROM collections col WHERE col.is_active = true
		 ORDER BY col.created_at DESC LIMIT 8`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collections := []gin.H{}
	for rows.Next() {
		var id, title, slug, imageURL string
		var count int
		if err := rows.Scan(&id, &title, &slug, &imageURL, &count); err != nil {
			continue
		}
		collections = append(collections, gin.H{
			"id":       id,
			"title":    title,
			"slug":     slug,
			"imageUrl": imageURL,
			"count":    count,
		})
	}
	return collections, rows.Err()
}
