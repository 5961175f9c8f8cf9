// utils/firebase.go
package utils

import (
	"context"
	"log"

	"medlease/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. Pushes are
// optional; when no service account is configured the client stays nil and
// callers must treat sends as no-ops.
func FirebaseInit() {
	keyPath := config.AppConfig.FirebaseServiceAccountKeyPath
	if keyPath == "" {
		log.Println("firebase: no service account configured, push notifications disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(keyPath)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}
