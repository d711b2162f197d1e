package FirebaseMessaging

import (
	"context"
	"errors"
	"log"
	"time"

	"NirapodTika/Models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var messagingClient *messaging.Client

// Setup initializes the FCM client. credentialsPath may be empty, in which
// case application default credentials are used.
func Setup(credentialsPath string) {
	ctx := context.Background()

	var app *firebase.App
	var err error

	if credentialsPath != "" {
		opt := option.WithCredentialsFile(credentialsPath)
		app, err = firebase.NewApp(ctx, nil, opt)
	} else {
		app, err = firebase.NewApp(ctx, nil)
	}

	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	messagingClient, err = app.Messaging(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase messaging client: %v", err)
	}

	log.Println("Firebase messaging client initialized")
}

func SendMessage(req Models.NotificationRequest) error {
	if messagingClient == nil {
		return errors.New("firebase messaging not configured")
	}
	if len(req.Tokens) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notification := &messaging.Notification{
		Title: req.Title,
		Body:  req.Body,
	}
	android := &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			Sound:    "default",
			Priority: messaging.PriorityHigh,
		},
	}

	if len(req.Tokens) == 1 {
		message := &messaging.Message{
			Token:        req.Tokens[0],
			Notification: notification,
			Android:      android,
		}
		_, err := messagingClient.Send(ctx, message)
		if err != nil {
			log.Printf("Error sending message: %v", err)
		}
		return err
	}

	_, err := messagingClient.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       req.Tokens,
		Notification: notification,
		Android:      android,
	})
	if err != nil {
		log.Printf("Error sending multicast message: %v", err)
	}
	return err
}
