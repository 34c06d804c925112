package backend

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/postlist/internal/logger"
)

// readOnly resources only expose GET routes.
var readOnly = map[string]bool{ResourceUsers: true}

type handler struct {
	store *Store
	log   logger.Logger
}

// NewHandler routes the REST endpoints for every resource onto store.
func NewHandler(store *Store, log logger.Logger) http.Handler {
	h := &handler{store: store, log: logger.Ensure(log)}

	r := gin.New()
	r.Use(gin.Recovery(), h.accessLog)

	for _, res := range Resources {
		g := r.Group("/" + res)
		g.GET("", h.list(res))
		g.GET("/:id", h.get(res))
		if readOnly[res] {
			continue
		}
		g.POST("", h.create(res))
		g.PATCH("/:id", h.patch(res))
		g.DELETE("/:id", h.delete(res))
	}
	return r
}

func (h *handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.DebugObj("fakeapi request", "fakeapi_request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.RequestURI(),
		"status":     c.Writer.Status(),
		"request_id": c.GetHeader("X-Request-ID"),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
}

func (h *handler) list(res string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := make(map[string]int)
		for key, values := range c.Request.URL.Query() {
			if len(values) == 0 {
				continue
			}
			n, err := strconv.Atoi(values[0])
			if err != nil {
				writeError(c, http.StatusBadRequest, "filter "+key+" must be an integer")
				return
			}
			filter[key] = n
		}

		recs, err := h.store.List(res, filter)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}

func (h *handler) get(res string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		rec, err := h.store.Get(res, id)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func (h *handler) create(res string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body Record
		if err := c.ShouldBindJSON(&body); err != nil {
			writeError(c, http.StatusBadRequest, "body must be a JSON object")
			return
		}
		rec, err := h.store.Create(res, body)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

func (h *handler) patch(res string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var body Record
		if err := c.ShouldBindJSON(&body); err != nil {
			writeError(c, http.StatusBadRequest, "body must be a JSON object")
			return
		}
		rec, err := h.store.Patch(res, id, body)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func (h *handler) delete(res string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := h.store.Delete(res, id); err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}

// fail maps store errors onto HTTP statuses.
func (h *handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidRecord):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorObj("fakeapi store failure", "fakeapi_error", map[string]any{
			"path":  c.Request.URL.RequestURI(),
			"error": err.Error(),
		})
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
