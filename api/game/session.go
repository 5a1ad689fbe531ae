package gameapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/gravity-maze/game"
	"github.com/beka-birhanu/gravity-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	defaultTop         = 10
	maxTop             = 100
	leaderboardTimeout = 500 * time.Millisecond
)

var ErrMissingSession = errors.New("game session is required")

// SessionController serves the state of one session and accepts remote commands.
type SessionController struct {
	session     i.GameSession
	leaderboard i.Leaderboard
}

// NewSessionController initializes a SessionController. leaderboard may be nil.
func NewSessionController(s i.GameSession, lb i.Leaderboard) (*SessionController, error) {
	if s == nil {
		return nil, ErrMissingSession
	}
	return &SessionController{
		session:     s,
		leaderboard: lb,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/session", sc.state)
	route.GET("/leaderboard", sc.top)
}

// RegisterProtected registers protected routes.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/session/commands", sc.command)
}

// state returns the latest snapshot. ?bodies=true adds the full frame.
func (sc *SessionController) state(ctx *gin.Context) {
	frame := sc.session.Latest()
	response := &SessionResponse{
		ID:    sc.session.ID().String(),
		Tick:  frame.Tick,
		State: frame.Snapshot,
		Cols:  frame.Level.Cols,
		Rows:  frame.Level.Rows,
	}
	if withBodies, _ := strconv.ParseBool(ctx.Query("bodies")); withBodies {
		response.Frame = &frame
	}

	ctx.JSON(http.StatusOK, response)
}

// command queues a gravity, retry or quit command.
func (sc *SessionController) command(ctx *gin.Context) {
	var request CommandRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd, err := game.ParseCommand(request.Command)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accepted := sc.session.Submit(cmd)
	status := http.StatusAccepted
	if !accepted {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, &CommandResponse{Command: cmd.String(), Accepted: accepted})
}

// top returns the leaderboard, ?n= limits the rows.
func (sc *SessionController) top(ctx *gin.Context) {
	if sc.leaderboard == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "leaderboard disabled"})
		return
	}

	n := defaultTop
	if raw := ctx.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = min(parsed, maxTop)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, leaderboardTimeout)
	defer cancel()
	entries, err := sc.leaderboard.Top(timeoutCtx, n)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "leaderboard unavailable"})
		return
	}

	ctx.JSON(http.StatusOK, &LeaderboardResponse{Entries: entries})
}
