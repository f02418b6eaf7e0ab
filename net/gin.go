package net

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sooomo/bst"
	"github.com/sooomo/bst/collection"
	"github.com/sooomo/bst/id"
	"github.com/sooomo/bst/internal/applog"
	"github.com/sooomo/bst/net/protocols"
	"golang.org/x/time/rate"
)

var (
	HeaderRequestId   = "X-Request-Id"
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
)

const ctxKeyRequestId = "request_id"

// 请求体上限
const maxBodyBytes = 1 << 20

type TreeInfo struct {
	Id    string `json:"id" msgpack:"id"`
	Kind  Kind   `json:"kind" msgpack:"kind"`
	Size  int    `json:"size" msgpack:"size"`
	Empty bool   `json:"empty" msgpack:"empty"`
}

type ContainsInfo struct {
	Value string `json:"value" msgpack:"value"`
	Found bool   `json:"found" msgpack:"found"`
}

type createTreeReq struct {
	Kind string `json:"kind" msgpack:"kind"`
}

type insertValueReq struct {
	Value any `json:"value" msgpack:"value"`
}

func treeInfo(treeId string, tree HostedTree) TreeInfo {
	return TreeInfo{Id: treeId, Kind: tree.Kind(), Size: tree.Size(), Empty: tree.IsEmpty()}
}

// 按 Accept 头选择编码方式写出响应
func reply[TData any](c *gin.Context, status int, dto bst.ReplyDto[int, TData]) {
	m := protocols.ForContentType(c.GetHeader(HeaderAccept))
	out, err := m.Marshal(dto)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, m.ContentType(), out)
}

func replyError(c *gin.Context, err error) {
	status := statusOf(err)
	reply(c, status, bst.Fail(status, err.Error()))
	c.Abort()
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, collection.ErrInvalidArgument),
		errors.Is(err, ErrValueType),
		errors.Is(err, ErrUnknownKind),
		errors.Is(err, errBadBody),
		errors.Is(err, errNoQueryValue):
		return http.StatusBadRequest
	case errors.Is(err, ErrTreeNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTooManyTrees):
		return http.StatusConflict
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

var (
	errBadBody      = errors.New("bad request body")
	errBodyTooLarge = errors.New("request body too large")
	errNoQueryValue = errors.New("missing query parameter \"value\"")
)

// 按 Content-Type 解码请求体
func bind(c *gin.Context, v any) error {
	if c.Request.Body == nil {
		return errBadBody
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return errBadBody
	}
	if len(body) == 0 {
		return errBadBody
	}
	m := protocols.ForContentType(c.GetHeader(HeaderContentType))
	if err := m.Unmarshal(body, v); err != nil {
		return errors.Join(errBadBody, err)
	}
	return nil
}

// 为每个请求分配Id，客户端传入时沿用
func RequestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqId := c.GetHeader(HeaderRequestId)
		if id.Validate(reqId) != nil {
			reqId = id.NewUUIDWithoutDash()
		}
		c.Set(ctxKeyRequestId, reqId)
		c.Request = c.Request.WithContext(applog.WithRequestId(c.Request.Context(), reqId))
		c.Header(HeaderRequestId, reqId)
		c.Next()
	}
}

func AccessLogMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().Ctx(c.Request.Context()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// 令牌桶限流，limiter 为 nil 时不限流
func RateLimitMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			reply(c, http.StatusTooManyRequests, bst.Fail(http.StatusTooManyRequests, "rate limited"))
			c.Abort()
			return
		}
		c.Next()
	}
}

type treeHandlers struct {
	store  *TreeStore
	logger zerolog.Logger
}

func (h *treeHandlers) createTree(c *gin.Context) {
	var req createTreeReq
	if err := bind(c, &req); err != nil {
		replyError(c, err)
		return
	}
	kind, err := ParseKind(req.Kind)
	if err != nil {
		replyError(c, err)
		return
	}
	treeId, tree, err := h.store.Create(kind)
	if err != nil {
		replyError(c, err)
		return
	}
	h.logger.Debug().Ctx(c.Request.Context()).Str("tree", treeId).Str("kind", string(kind)).Msg("tree created")
	reply(c, http.StatusCreated, bst.Ok(treeInfo(treeId, tree)))
}

func (h *treeHandlers) getTree(c *gin.Context) {
	treeId := c.Param("id")
	tree, err := h.store.Get(treeId)
	if err != nil {
		replyError(c, err)
		return
	}
	reply(c, http.StatusOK, bst.Ok(treeInfo(treeId, tree)))
}

func (h *treeHandlers) deleteTree(c *gin.Context) {
	treeId := c.Param("id")
	if err := h.store.Remove(treeId); err != nil {
		replyError(c, err)
		return
	}
	h.logger.Debug().Ctx(c.Request.Context()).Str("tree", treeId).Msg("tree removed")
	reply(c, http.StatusOK, bst.Ok[any](nil))
}

func (h *treeHandlers) insertValue(c *gin.Context) {
	treeId := c.Param("id")
	tree, err := h.store.Get(treeId)
	if err != nil {
		replyError(c, err)
		return
	}
	var req insertValueReq
	if err := bind(c, &req); err != nil {
		replyError(c, err)
		return
	}
	if err := tree.Insert(req.Value); err != nil {
		h.logger.Debug().Ctx(c.Request.Context()).Str("tree", treeId).Err(err).Msg("insert rejected")
		replyError(c, err)
		return
	}
	reply(c, http.StatusOK, bst.Ok(treeInfo(treeId, tree)))
}

func (h *treeHandlers) containsValue(c *gin.Context) {
	treeId := c.Param("id")
	tree, err := h.store.Get(treeId)
	if err != nil {
		replyError(c, err)
		return
	}
	// 空字符串和带 / 的值无法放进路径段，所以走查询参数
	raw, ok := c.GetQuery("value")
	if !ok {
		replyError(c, errNoQueryValue)
		return
	}
	found, err := tree.ContainsRaw(raw)
	if err != nil {
		replyError(c, err)
		return
	}
	reply(c, http.StatusOK, bst.Ok(ContainsInfo{Value: raw, Found: found}))
}

func (h *treeHandlers) clearTree(c *gin.Context) {
	treeId := c.Param("id")
	tree, err := h.store.Get(treeId)
	if err != nil {
		replyError(c, err)
		return
	}
	tree.Clear()
	reply(c, http.StatusOK, bst.Ok(treeInfo(treeId, tree)))
}

func registerRoutes(r gin.IRouter, h *treeHandlers) {
	trees := r.Group("/trees")
	trees.POST("", h.createTree)
	trees.GET("/:id", h.getTree)
	trees.DELETE("/:id", h.deleteTree)
	trees.POST("/:id/values", h.insertValue)
	trees.GET("/:id/values", h.containsValue)
	trees.DELETE("/:id/values", h.clearTree)
}
