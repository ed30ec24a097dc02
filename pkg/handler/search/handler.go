/*
 * @Description: 搜索处理器
 * @Author: 安知鱼
 * @Date: 2025-01-27 10:00:00
 * @LastEditTime: 2026-10-15 15:38:16
 * @LastEditors: 安知鱼
 */
package search

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hollowpress/hollow-press/internal/app/middleware"
	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/response"
	"github.com/hollowpress/hollow-press/pkg/service/search"
)

const (
	defaultTrendingLimit = 10
	maxTrendingLimit     = 100
)

type Handler struct {
	searchService *search.SearchService
	now           func() time.Time
}

func NewHandler(searchService *search.SearchService) *Handler {
	return &Handler{
		searchService: searchService,
		now:           time.Now,
	}
}

// SuggestResponse 是输入联想的响应
type SuggestResponse struct {
	Suggestions []model.Suggestion `json:"suggestions"`
}

// Search 聚合搜索接口
// @Summary      搜索
// @Description  在文章、页面、评论、说明页中搜索；管理员还可以搜索账号和举报
// @Tags         全站搜索
// @Produce      json
// @Param        q         query  string  true   "搜索关键词"
// @Param        types     query  string  false  "逗号分隔的分类"
// @Param        limit     query  int     false  "每页数量"  default(10)
// @Param        page      query  int     false  "页码"  default(1)
// @Param        from      query  string  false  "天数或日期"
// @Param        category  query  string  false  "文章分类名"
// @Success      200  {object}  model.SearchEnvelope
// @Failure      400  {object}  response.ErrorBody  "搜索关键词或内容类型无效"
// @Failure      500  {object}  response.ErrorBody  "搜索失败"
// @Router       /search [get]
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		response.Error(c, http.StatusBadRequest, "搜索关键词不能为空")
		return
	}

	types, err := model.ParseCategoryFilter(c.Query("types"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	req := model.SearchRequest{
		Query:      query,
		Types:      types,
		Limit:      parseInt(c.Query("limit")),
		Page:       parseInt(c.Query("page")),
		DateFrom:   ParseFrom(c.Query("from"), h.now()),
		Category:   strings.TrimSpace(c.Query("category")),
		Privileged: middleware.IsPrivileged(c),
	}

	env, err := h.searchService.Search(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, search.ErrInvalidQuery) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[Search] 搜索 '%s' 失败: %v", query, err)
		response.Error(c, http.StatusInternalServerError, "搜索失败，请稍后再试")
		return
	}

	c.JSON(http.StatusOK, env)
}

// Suggest 输入联想接口，总是返回 200
// @Summary      输入联想
// @Tags         全站搜索
// @Produce      json
// @Param        q      query  string  true   "输入的前缀"
// @Param        limit  query  int     false  "返回数量"  default(5)
// @Success      200  {object}  SuggestResponse
// @Router       /search/suggest [get]
func (h *Handler) Suggest(c *gin.Context) {
	suggestions, err := h.searchService.Suggest(c.Request.Context(), c.Query("q"), parseInt(c.Query("limit")))
	if err != nil {
		log.Printf("[Suggest] 输入联想失败: %v", err)
		suggestions = []model.Suggestion{}
	}
	c.JSON(http.StatusOK, SuggestResponse{Suggestions: suggestions})
}

// Trending 热门搜索词（管理员）
// @Summary      热门搜索词
// @Tags         全站搜索
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query  int  false  "返回数量"  default(10)
// @Success      200  {object}  response.Response{data=[]model.TrendingTerm}
// @Router       /admin/search/trending [get]
func (h *Handler) Trending(c *gin.Context) {
	limit := parseInt(c.Query("limit"))
	switch {
	case limit <= 0:
		limit = defaultTrendingLimit
	case limit > maxTrendingLimit:
		limit = maxTrendingLimit
	}
	response.Success(c, h.searchService.Trending(limit), "获取热门搜索词成功")
}
