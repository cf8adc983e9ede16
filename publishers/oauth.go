package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"crosspost/config"
	"crosspost/models"
)

// OAuthClient builds authorization URLs and exchanges authorization codes for
// tokens. Only the platforms the dashboard can link interactively are wired:
// Instagram, Snapchat and Facebook.
type OAuthClient struct {
	cfg    *config.Config
	client *http.Client
}

// NewOAuthClient creates an OAuthClient with an injectable http.Client.
// If nil is passed, a default client with a sensible timeout is used.
func NewOAuthClient(cfg *config.Config, client *http.Client) *OAuthClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &OAuthClient{cfg: cfg, client: client}
}

func (o *OAuthClient) redirectURI(platform models.Platform) string {
	return fmt.Sprintf("%s/api/oauth/%s/callback", o.cfg.BaseURL, platform)
}

// AuthURL returns the authorization URL for a platform, or "" when the
// platform has no OAuth support here.
func (o *OAuthClient) AuthURL(platform models.Platform, state string) string {
	switch platform {
	case models.Instagram:
		if o.cfg.InstagramClientID == "" {
			return ""
		}
		q := url.Values{}
		q.Set("client_id", o.cfg.InstagramClientID)
		q.Set("redirect_uri", o.redirectURI(platform))
		q.Set("scope", "user_profile,user_media")
		q.Set("response_type", "code")
		q.Set("state", state)
		return "https://api.instagram.com/oauth/authorize?" + q.Encode()

	case models.Snapchat:
		if o.cfg.SnapchatClientID == "" {
			return ""
		}
		q := url.Values{}
		q.Set("client_id", o.cfg.SnapchatClientID)
		q.Set("redirect_uri", o.redirectURI(platform))
		q.Set("scope", "https://auth.snapchat.com/oauth2/api/user.display_name")
		q.Set("response_type", "code")
		q.Set("state", state)
		return "https://accounts.snapchat.com/accounts/oauth2/auth?" + q.Encode()

	case models.Facebook:
		if o.cfg.FacebookAppID == "" {
			return ""
		}
		q := url.Values{}
		q.Set("client_id", o.cfg.FacebookAppID)
		q.Set("redirect_uri", o.redirectURI(platform))
		q.Set("scope", "pages_manage_posts,pages_read_engagement")
		q.Set("response_type", "code")
		q.Set("state", state)
		return "https://www.facebook.com/v18.0/dialog/oauth?" + q.Encode()

	default:
		return ""
	}
}

// ExchangeCode trades an authorization code for an access token.
func (o *OAuthClient) ExchangeCode(ctx context.Context, platform models.Platform, code string) (*models.TokenData, error) {
	switch platform {
	case models.Instagram:
		form := url.Values{}
		form.Set("client_id", o.cfg.InstagramClientID)
		form.Set("client_secret", o.cfg.InstagramClientSecret)
		form.Set("grant_type", "authorization_code")
		form.Set("redirect_uri", o.redirectURI(platform))
		form.Set("code", code)
		return o.postTokenForm(ctx, "https://api.instagram.com/oauth/access_token", form)

	case models.Snapchat:
		form := url.Values{}
		form.Set("client_id", o.cfg.SnapchatClientID)
		form.Set("client_secret", o.cfg.SnapchatClientSecret)
		form.Set("grant_type", "authorization_code")
		form.Set("redirect_uri", o.redirectURI(platform))
		form.Set("code", code)
		return o.postTokenForm(ctx, "https://accounts.snapchat.com/accounts/oauth2/token", form)

	case models.Facebook:
		q := url.Values{}
		q.Set("client_id", o.cfg.FacebookAppID)
		q.Set("client_secret", o.cfg.FacebookAppSecret)
		q.Set("redirect_uri", o.redirectURI(platform))
		q.Set("code", code)
		return o.getToken(ctx, "https://graph.facebook.com/v18.0/oauth/access_token?"+q.Encode())

	default:
		return nil, fmt.Errorf("platform %s not supported for OAuth", platform)
	}
}

// FetchProfile resolves the account identity behind an access token, used to
// label the linked account in the dashboard.
func (o *OAuthClient) FetchProfile(ctx context.Context, platform models.Platform, accessToken string) (*models.PlatformProfile, error) {
	var endpoint string
	switch platform {
	case models.Instagram:
		endpoint = "https://graph.instagram.com/me?fields=id,username&access_token=" + url.QueryEscape(accessToken)
	case models.Facebook:
		endpoint = "https://graph.facebook.com/me?fields=id,name&access_token=" + url.QueryEscape(accessToken)
	case models.Snapchat:
		endpoint = "https://kit.api.snapchat.com/v1/me"
	default:
		return nil, fmt.Errorf("platform %s not supported for OAuth", platform)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if platform == models.Snapchat {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s profile fetch failed: %s", platform, strings.TrimSpace(string(body)))
	}

	var profile models.PlatformProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (o *OAuthClient) postTokenForm(ctx context.Context, endpoint string, form url.Values) (*models.TokenData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return o.doToken(req)
}

func (o *OAuthClient) getToken(ctx context.Context, endpoint string) (*models.TokenData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	return o.doToken(req)
}

func (o *OAuthClient) doToken(req *http.Request) (*models.TokenData, error) {
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed: %s", strings.TrimSpace(string(body)))
	}

	var token models.TokenData
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token exchange returned no access token")
	}

	return &token, nil
}
