// Package gmail syncs provider labels when cards move between columns.
package gmail

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/sirupsen/logrus"
)

// TokenLookup resolves the OAuth tokens for an owner. Token storage and the
// login flow live with the auth collaborator.
type TokenLookup func(ownerID string) (accessToken, refreshToken string, err error)

// TokenUpdateFunc is a callback invoked when a token refresh produced a new
// access token that should be persisted.
type TokenUpdateFunc func(ownerID string, token *oauth2.Token) error

type Service struct {
	clientID     string
	clientSecret string
	tokens       TokenLookup
	onRefresh    TokenUpdateFunc
	log          *logrus.Logger
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	ownerID  string
	callback TokenUpdateFunc
	log      *logrus.Logger
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(s.ownerID, t); err != nil {
			s.log.WithField("owner", s.ownerID).WithError(err).Warn("failed to persist refreshed token")
		}
	}
	return t, nil
}

// NewService creates a label sync service. onRefresh may be nil when the
// caller does not persist refreshed tokens.
func NewService(clientID, clientSecret string, tokens TokenLookup, onRefresh TokenUpdateFunc, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokens:       tokens,
		onRefresh:    onRefresh,
		log:          log,
	}
}

// gmailService creates a Gmail client with the owner's tokens
func (s *Service) gmailService(ctx context.Context, ownerID string) (*gmail.Service, error) {
	accessToken, refreshToken, err := s.tokens(ownerID)
	if err != nil {
		return nil, fmt.Errorf("token lookup for owner %s: %w", ownerID, err)
	}
	if accessToken == "" {
		return nil, fmt.Errorf("no access token for owner %s", ownerID)
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	// Only force refresh if we have a refresh token
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	oauthCfg := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	wrappedSource := &notifyTokenSource{
		src:      oauthCfg.TokenSource(ctx, token),
		current:  token,
		ownerID:  ownerID,
		callback: s.onRefresh,
		log:      s.log,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}

	return srv, nil
}

// ModifyLabels adds and/or removes labels on a message
func (s *Service) ModifyLabels(ctx context.Context, ownerID, messageID string, addLabelIDs, removeLabelIDs []string) error {
	if len(addLabelIDs) == 0 && len(removeLabelIDs) == 0 {
		return nil
	}

	srv, err := s.gmailService(ctx, ownerID)
	if err != nil {
		return err
	}

	modifyReq := &gmail.ModifyMessageRequest{}
	if len(addLabelIDs) > 0 {
		modifyReq.AddLabelIds = addLabelIDs
	}
	if len(removeLabelIDs) > 0 {
		modifyReq.RemoveLabelIds = removeLabelIDs
	}

	if _, err := srv.Users.Messages.Modify("me", messageID, modifyReq).Do(); err != nil {
		return fmt.Errorf("unable to modify message labels: %w", err)
	}

	return nil
}

// ListLabels returns the owner's provider labels keyed by id
func (s *Service) ListLabels(ctx context.Context, ownerID string) (map[string]string, error) {
	srv, err := s.gmailService(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Users.Labels.List("me").Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve labels: %w", err)
	}

	labels := make(map[string]string, len(resp.Labels))
	for _, label := range resp.Labels {
		if label.Type == "system" || label.Type == "user" {
			labels[label.Id] = label.Name
		}
	}
	return labels, nil
}
