package model

import "math"

// 分页默认值
const (
	DefaultPublicPageSize = 12
	DefaultSellerPageSize = 10
)

// ProductFilters 聚合产品列表查询的全部可选条件
// 指针字段表示调用方未提供该条件
type ProductFilters struct {
	Search            string   `json:"search"`
	Category          string   `json:"category"`
	MinPrice          *float64 `json:"minPrice"`
	MaxPrice          *float64 `json:"maxPrice"`
	State             string   `json:"state"`
	City              string   `json:"city"`
	SustainabilityTag string   `json:"sustainabilityTag"`
	MinMoq            *float64 `json:"minMoq"`
	MaxMoq            *float64 `json:"maxMoq"`
	SellerID          string   `json:"seller"`
	Status            string   `json:"status"`
	Page              int      `json:"page"`
	Limit             int      `json:"limit"`
	SortBy            string   `json:"sortBy"`
	SortOrder         string   `json:"sortOrder"`
}

// Normalize 补齐分页和排序的默认值
func (f *ProductFilters) Normalize(defaultLimit int) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.SortBy == "" {
		f.SortBy = "createdAt"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
}

// Pagination 分页元数据，全部由查询结果推导
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalProducts int64 `json:"totalProducts"`
	HasNext       bool  `json:"hasNext"`
	HasPrev       bool  `json:"hasPrev"`
}

// NewPagination 根据页码、每页数量和总数推导分页元数据
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProducts: total,
		HasNext:       int64(page*limit) < total,
		HasPrev:       page > 1,
	}
}

// ProductList 列表端点的响应载荷，整体作为缓存值
type ProductList struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
