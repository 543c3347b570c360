package models

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url"`
	AccentColor string    `json:"accent_color"`
	Priority    int       `json:"priority"`
	IsVisible   bool      `json:"is_visible"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	SKU             string    `json:"sku"`
	CategoryID      string    `json:"category_id"`
	Brand           string    `json:"brand"`
	Price           float64   `json:"price"`
	Stock           int       `json:"stock"`
	Weight          string    `json:"weight"`
	ImageURL        string    `json:"image_url"`
	Status          string    `json:"status"`
	IsFeatured      bool      `json:"is_featured"`
	IsWeeklySpecial bool      `json:"is_weekly_special"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Collection struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type HeroSliderImage struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type SiteAsset struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Type string `json:"type"`
}
