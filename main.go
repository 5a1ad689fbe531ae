package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/beka-birhanu/gravity-maze/api"
	gameapi "github.com/beka-birhanu/gravity-maze/api/game"
	api_i "github.com/beka-birhanu/gravity-maze/api/i"
	"github.com/beka-birhanu/gravity-maze/api/identity"
	"github.com/beka-birhanu/gravity-maze/config"
	"github.com/beka-birhanu/gravity-maze/gravity"
	"github.com/beka-birhanu/gravity-maze/infrastruture/audio"
	"github.com/beka-birhanu/gravity-maze/infrastruture/leaderboard"
	logger "github.com/beka-birhanu/gravity-maze/infrastruture/log"
	"github.com/beka-birhanu/gravity-maze/infrastruture/terminal"
	"github.com/beka-birhanu/gravity-maze/infrastruture/token"
	"github.com/beka-birhanu/gravity-maze/level"
	"github.com/beka-birhanu/gravity-maze/physics/aabb"
	"github.com/beka-birhanu/gravity-maze/rng"
	"github.com/beka-birhanu/gravity-maze/service"
	"github.com/beka-birhanu/gravity-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// Initial viewport, replaced by the board size on the first draw.
	initialViewportWidth  = 80
	initialViewportHeight = 48

	remoteTokenTTL = 24 * time.Hour
)

// Global variables for dependencies
var (
	cfg           config.Config
	logFile       *os.File
	appLogger     i.Logger
	soundPlayer   *audio.Player
	redisClient   *redis.Client
	scoreBoard    i.Leaderboard
	levelBuilder  *level.Builder
	gameSession   *service.GameSession
	jwtTokenizer  i.Tokenizer
	router        *api.Router
	ui            *terminal.UI
	sessionLogger i.Logger
	audioLogger   i.Logger
	boardLogger   i.Logger
	apiLogger     i.Logger
)

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Loading config: %v\n", err)
		os.Exit(1)
	}
}

func initLoggers() {
	var err error
	logFile, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Opening log file: %v\n", err)
		os.Exit(1)
	}

	appLogger, _ = logger.New("APP", config.ColorGreen, logFile)
	sessionLogger = mustLogger("SESSION", config.ColorCyan)
	audioLogger = mustLogger("AUDIO", config.ColorYellow)
	boardLogger = mustLogger("LEADERBOARD", config.ColorMagenta)
	apiLogger = mustLogger("API", config.ColorBlue)
}

func mustLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, logFile)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initAudio() {
	if !cfg.Audio {
		audioLogger.Info("Audio disabled")
		return
	}

	soundPlayer = audio.NewPlayer()
	if err := soundPlayer.Initialize(); err != nil {
		audioLogger.Warning(fmt.Sprintf("Audio unavailable, continuing without sound: %v", err))
		soundPlayer = nil
		return
	}
	audioLogger.Info("Audio initialized")
}

func initLeaderboard(ctx context.Context) {
	if cfg.RedisAddr == "" {
		boardLogger.Info("Leaderboard disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	lb, err := leaderboard.NewRedisLeaderboard(pingCtx, redisClient, "")
	if err != nil {
		boardLogger.Warning(fmt.Sprintf("Leaderboard unavailable, continuing without it: %v", err))
		_ = redisClient.Close()
		redisClient = nil
		return
	}
	scoreBoard = lb
	boardLogger.Info(fmt.Sprintf("Connected to leaderboard at %s", cfg.RedisAddr))
}

func initLevelBuilder() {
	var err error
	levelBuilder, err = level.NewBuilder(cfg.LevelParams())
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level builder: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Level builder initialized")
}

func initGameSession() {
	sc := &service.Config{
		Engine:         aabb.NewEngine(cfg.GravityScale),
		Builder:        levelBuilder,
		Gravity:        gravity.NewController(cfg.Gravity, cfg.DefaultGravity),
		Random:         rng.New(cfg.Seed),
		TickInterval:   cfg.TickInterval(),
		WinDelay:       cfg.WinDelay,
		LoseDelay:      cfg.LoseDelay,
		ViewportWidth:  initialViewportWidth,
		ViewportHeight: initialViewportHeight,
		Logger:         sessionLogger,
		PlayerName:     cfg.PlayerName,
	}
	// Typed nils would defeat the session's nil checks.
	if soundPlayer != nil {
		sc.Sounds = soundPlayer
	}
	if scoreBoard != nil {
		sc.Leaderboard = scoreBoard
	}

	var err error
	gameSession, err = service.NewGameSession(sc)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game session: %v", err))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Game session %s initialized", gameSession.ID()))
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(cfg.JWTSecret, cfg.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initRouter() {
	if cfg.StatusAddr == "" {
		apiLogger.Info("Status API disabled")
		return
	}

	gin.SetMode(cfg.GinMode)
	sessionController, err := gameapi.NewSessionController(gameSession, scoreBoard)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session controller: %v", err))
		os.Exit(1)
	}

	router = api.NewRouter(api.Config{
		Addr:                    cfg.StatusAddr,
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{sessionController},
		AuthorizationMiddleware: identity.Authoriz(jwtTokenizer),
	})
	apiLogger.Info("Router initialized")
}

func initUI() {
	ui = terminal.New(gameSession, terminal.PaletteFrom(cfg.Colors), cfg.FrameInterval(), nil)
	appLogger.Info("Terminal UI initialized")
}

// printRemoteToken prints a bearer token for the protected session routes.
func printRemoteToken() {
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "API_SECRET must be set to issue tokens")
		os.Exit(1)
	}
	initJWTTokenizer()

	tok, err := jwtTokenizer.Generate(map[string]interface{}{"sub": cfg.PlayerName}, remoteTokenTTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generating token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

func main() {
	initConfig()
	initLoggers()
	defer logFile.Close()

	if len(os.Args) > 1 && os.Args[1] == "token" {
		printRemoteToken()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initAudio()
	if soundPlayer != nil {
		defer soundPlayer.Close()
	}
	initLeaderboard(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initLevelBuilder()
	initGameSession()
	initJWTTokenizer()
	initRouter()
	initUI()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		if err := gameSession.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			appLogger.Error(fmt.Sprintf("Game session: %v", err))
		}
	}()

	if router != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			apiLogger.Info(fmt.Sprintf("Listening on %s", cfg.StatusAddr))
			if err := router.Run(ctx); err != nil {
				apiLogger.Error(fmt.Sprintf("Serving: %v", err))
			}
		}()
	}

	// Quit from a remote command also closes the terminal.
	go func() {
		<-gameSession.Done()
		ui.Stop()
	}()

	if err := ui.Run(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Terminal UI: %v", err))
	}
	cancel()
	wg.Wait()
	appLogger.Info("Shut down")
}
