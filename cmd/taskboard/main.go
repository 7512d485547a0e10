// cmd/taskboard/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"solar-crm-client/internal/board"
	"solar-crm-client/internal/board/render"
	"solar-crm-client/internal/common/config"
	"solar-crm-client/internal/common/errors"
	"solar-crm-client/internal/common/logger"
	"solar-crm-client/internal/common/observability"
	"solar-crm-client/internal/common/session"
	"solar-crm-client/internal/common/validation"
	"solar-crm-client/internal/crm"
	"solar-crm-client/internal/models"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	var (
		doLogin  = flag.Bool("login", false, "sign in and store the session")
		doSignup = flag.Bool("signup", false, "create an account")
		doLogout = flag.Bool("logout", false, "clear the stored session")
		email    = flag.String("email", "", "email for -login / -signup")
		password = flag.String("password", "", "password for -login / -signup")
		name     = flag.String("name", "", "full name for -signup")
		phone    = flag.String("phone", "", "phone number for -signup")
		role     = flag.String("role", "", "employee role for -signup")
		taskID   = flag.Int("task", 0, "open the detail view for one task")
		moveTo   = flag.String("move", "", "with -task: move the task to this status")
	)
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init session store with retry ---
	store := session.NewStore(cfg.Session, log)
	defer store.Close()

	err = retryWithBackoff(func() error {
		return store.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	zapLog.Info("Session store connected successfully")

	api := crm.NewClient(cfg.API, log, obs)

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Metrics server listening", zap.String("address", cfg.Metrics.ListenAddress))
			if err := http.ListenAndServe(cfg.Metrics.ListenAddress, nil); err != nil {
				zapLog.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	switch {
	case *doSignup:
		runSignup(ctx, api, *name, *email, *phone, *role, *password)
	case *doLogin:
		runLogin(ctx, api, store, cfg.Session.DeviceID, *email, *password)
	case *doLogout:
		runLogout(ctx, store, cfg.Session.DeviceID)
	default:
		runBoard(ctx, api, store, cfg, log, *taskID, *moveTo)
	}
}

func runSignup(ctx context.Context, api *crm.Client, name, email, phone, role, password string) {
	if name == "" || email == "" || phone == "" || role == "" || password == "" {
		fail("signup requires -name, -email, -phone, -role and -password")
	}
	if !validation.ValidateEmail(email) {
		fail("invalid email address")
	}
	if !validation.ValidatePhone(phone) {
		fail("invalid phone number")
	}

	input := models.SignupInput{
		Name:         name,
		EmailID:      email,
		PhoneNumber:  phone,
		EmployeeRole: models.Role(role),
		Password:     password,
	}
	if err := api.Signup(ctx, input); err != nil {
		fail(errors.UserMessage(err))
	}
	fmt.Println("Account created. Sign in with -login.")
}

func runLogin(ctx context.Context, api *crm.Client, store *session.Store, deviceID, email, password string) {
	if email == "" || password == "" {
		fail("login requires -email and -password")
	}
	if !validation.ValidateEmail(email) {
		fail("invalid email address")
	}

	sess, err := api.Login(ctx, models.LoginInput{EmailID: email, Password: password})
	if err != nil {
		fail(errors.UserMessage(err))
	}
	if err := store.Save(ctx, deviceID, *sess); err != nil {
		fail(errors.UserMessage(err))
	}
	fmt.Printf("Signed in as %s (%s)\n", sess.Name, sess.Role)
}

func runLogout(ctx context.Context, store *session.Store, deviceID string) {
	if err := store.Clear(ctx, deviceID); err != nil {
		fail(errors.UserMessage(err))
	}
	fmt.Println("Signed out.")
}

func runBoard(ctx context.Context, api *crm.Client, store *session.Store, cfg *config.Config, log logger.Logger, taskID int, moveTo string) {
	sess, err := store.Load(ctx, cfg.Session.DeviceID)
	if err != nil {
		fail(errors.UserMessage(err))
	}
	if sess == nil || !sess.LoggedIn() {
		fail("Not signed in. Run with -login first.")
	}

	b := board.New(api, cfg.Board, *sess, log)
	if err := b.Refresh(ctx); err != nil {
		fail(errors.UserMessage(err))
	}

	if taskID > 0 && moveTo != "" {
		if err := b.UpdateStatus(ctx, taskID, models.TaskStatus(moveTo)); err != nil {
			fail(errors.UserMessage(err))
		}
		fmt.Printf("Task #%d moved to %s\n", taskID, moveTo)
		return
	}

	if taskID > 0 {
		modal, err := b.OpenTask(ctx, taskID)
		if err != nil {
			fail(errors.UserMessage(err))
		}
		fmt.Print(render.Modal(modal))
		return
	}

	fmt.Print(render.Board(b))
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
