package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "travelapp/internal/config"
	intdb "travelapp/internal/db"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "travelapp berjalan"})
}

// tables the checkout and reconcile flow cannot run without
var requiredTables = []string{"users", "package_orders", "orders", "payment_notifications"}

// DBCheck pings the database and reports which required tables exist.
func DBCheck(c *gin.Context) {
	db := intconfig.DB
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database belum terhubung"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal ping database: " + err.Error()})
		return
	}

	tables := make(gin.H, len(requiredTables))
	missing := 0
	for _, t := range requiredTables {
		ok := intdb.HasTable(ctx, db, t)
		tables[t] = ok
		if !ok {
			missing++
		}
	}
	status := http.StatusOK
	if missing > 0 {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"message": "koneksi database OK", "tables": tables})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
		return
	}

	routes := r.Routes()
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
