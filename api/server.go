package api

import (
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func NewServer(router *gin.Engine, port string) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}
