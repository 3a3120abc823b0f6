package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	log "github.com/sirupsen/logrus"

	"github.com/muraja-app/muraja-backend/internal/container"
	"github.com/muraja-app/muraja-backend/internal/router"
)

var chiLambda *chiadapter.ChiLambdaV2

func lambdaHandler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:         c.UserContainer.Handler,
		ExamHandler:         c.ExamContainer.Handler,
		ActivationHandler:   c.ActivationContainer.Handler,
		NotificationHandler: c.NotificationContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		chiLambda = chiadapter.NewV2(r)
		lambda.Start(lambdaHandler)
		return
	}

	addr := ":" + portOr("8080")
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("shutdown failed: %v", err)
	}
}

func portOr(def string) string {
	if v := os.Getenv("PORT"); v != "" {
		return v
	}
	return def
}
