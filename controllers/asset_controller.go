package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/utils"
)

type AssetController struct{}

// Singleton site assets are keyed by an allow-list; each key maps to its
// upload folder and expected media type.
var allowedAssetKeys = map[string]struct {
	Folder string
	Type   string
}{
	"seedToPlateVideo":      {Folder: "seedtoplate", Type: "video"},
	"freeDeliveryImage":     {Folder: "free-delivery", Type: "image"},
	"dailyGrocerImage":      {Folder: "daily-grocer", Type: "image"},
	"handmadeProductsImage": {Folder: "handmade-products", Type: "image"},
}

func heroImageURLs(ctx context.Context) ([]string, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT image_url FROM hero_slider_images ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			continue
		}
		images = append(images, url)
	}
	return images, rows.Err()
}

func siteAssetMap(ctx context.Context) (map[string]gin.H, error) {
	rows, err := config.DB.Query(ctx, `SELECT key, url, type FROM site_assets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := map[string]gin.H{}
	for rows.Next() {
		var key, url, assetType string
		if err := rows.Scan(&key, &url, &assetType); err != nil {
			continue
		}
		assets[key] = gin.H{"url": url, "type": assetType}
	}
	return assets, rows.Err()
}

func (ctrl *AssetController) GetHeroSlider(c *gin.Context) {
	images, err := heroImageURLs(context.Background())
	if err != nil {
		failStorage(c, "GET /api/hero-slider", err)
		return
	}
	c.JSON(200, gin.H{"images": images})
}

func (ctrl *AssetController) GetSiteAssets(c *gin.Context) {
	assets, err := siteAssetMap(context.Background())
	if err != nil {
		failStorage(c, "GET /api/site-assets", err)
		return
	}
	c.JSON(200, gin.H{"assets": assets})
}

// UploadHeroImages accepts a multi-file form; non-image entries are skipped
// rather than failing the batch.
func (ctrl *AssetController) UploadHeroImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(400, gin.H{"error": "No files were provided."})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(400, gin.H{"error": "No files were provided."})
		return
	}

	uploaded := []string{}
	for _, file := range files {
		if file.Size == 0 {
			continue
		}
		imageURL, err := utils.UploadImage(c, file, "heroslider")
		if err != nil {
			continue
		}
		if _, err := config.DB.Exec(context.Background(),
			`INSERT INTO hero_slider_images (image_url) VALUES ($1)`, imageURL); err != nil {
			failStorage(c, "POST /api/admin/hero-slider", err)
			return
		}
		uploaded = append(uploaded, imageURL)
	}

	if len(uploaded) == 0 {
		c.JSON(400, gin.H{"error": "No valid image files were uploaded."})
		return
	}

	invalidateHomeCache()
	c.JSON(201, gin.H{"message": "Images uploaded.", "images": uploaded})
}

func (ctrl *AssetController) GetSiteContent(c *gin.Context) {
	ctx := context.Background()

	heroImages, err := heroImageURLs(ctx)
	if err != nil {
		failStorage(c, "GET /api/admin/all-site-content", err)
		return
	}

	assets, err := siteAssetMap(ctx)
	if err != nil {
		failStorage(c, "GET /api/admin/all-site-content", err)
		return
	}

	siteAssets := gin.H{}
	for key, asset := range assets {
		siteAssets[key] = asset["url"]
	}

	c.JSON(200, gin.H{"heroImages": heroImages, "siteAssets": siteAssets})
}

func (ctrl *AssetController) GetUserContent(c *gin.Context) {
	key := c.Param("key")
	if _, ok := allowedAssetKeys[key]; !ok {
		c.JSON(400, gin.H{"error": "Invalid key"})
		return
	}

	var url, assetType string
	err := config.DB.QueryRow(context.Background(),
		`SELECT url, type FROM site_assets WHERE key=$1`, key).Scan(&url, &assetType)
	if err != nil {
		if utils.IsNotFound(err) {
			c.JSON(200, gin.H{"asset": nil})
			return
		}
		failStorage(c, "GET /api/admin/user-content/:key", err)
		return
	}

	c.JSON(200, gin.H{"asset": gin.H{"url": url, "type": assetType}})
}

func (ctrl *AssetController) UploadUserContent(c *gin.Context) {
	key := c.Param("key")
	assetConfig, ok := allowedAssetKeys[key]
	if !ok {
		c.JSON(400, gin.H{"error": "Invalid key"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil || file.Size == 0 {
		c.JSON(400, gin.H{"error": "No file provided."})
		return
	}

	var url string
	if assetConfig.Type == "video" {
		url, err = utils.UploadVideo(c, file, assetConfig.Folder)
	} else {
		url, err = utils.UploadImage(c, file, assetConfig.Folder)
	}
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if _, err := config.DB.Exec(context.Background(),
		`INSERT INTO site_assets (key, url, type) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET url=$2, type=$3`,
		key, url, assetConfig.Type); err != nil {
		failStorage(c, "POST /api/admin/user-content/:key", err)
		return
	}

	invalidateHomeCache()
	c.JSON(201, gin.H{"message": "Asset uploaded.", "asset": gin.H{"key": key, "url": url, "type": assetConfig.Type}})
}
