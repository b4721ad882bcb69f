package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/you/go-flight-monitor/internal/config"
)

type Amadeus struct {
	host       string
	authPath   string
	searchPath string
	client     *http.Client
	id         string
	secret     string
	tokens     *TokenCache
}

func NewAmadeus(cfg *config.Config) *Amadeus {
	a := &Amadeus{host: cfg.AmadeusURL,
		authPath:   "/v1/security/oauth2/token",
		searchPath: "/v2/shopping/flight-offers",
		id:         cfg.AmadeusClientId,
		secret:     cfg.AmadeusClientSecret,
		client:     http.DefaultClient,
	}
	a.tokens = NewTokenCache(a.issueCredential)
	return a
}

func (a *Amadeus) Name() string { return "amadeus" }

func (a *Amadeus) issueCredential(ctx context.Context) (string, time.Duration, error) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", a.id)
	data.Set("client_secret", a.secret)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, a.host+a.authPath, strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := a.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", 0, fmt.Errorf("token endpoint: %s", resp.Status)
	}
	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", 0, err
	}
	if tr.AccessToken == "" {
		return "", 0, errors.New("token endpoint: empty access_token")
	}
	return tr.AccessToken, time.Duration(tr.ExpiresIn) * time.Second, nil
}

func (a *Amadeus) Search(ctx context.Context, q SearchQuery) ([]Offer, error) {
	if a.id == "" || a.secret == "" {
		return nil, &AuthError{Provider: a.Name(), Err: errors.New("credentials missing")}
	}
	tok, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, &AuthError{Provider: a.Name(), Err: err}
	}

	u := fmt.Sprintf("%s%s?originLocationCode=%s&destinationLocationCode=%s&departureDate=%s&returnDate=%s&adults=%d&currencyCode=%s&nonStop=true&max=20",
		a.host,
		a.searchPath,
		url.QueryEscape(q.Origin),
		url.QueryEscape(q.Destination),
		url.QueryEscape(q.DepartureDate),
		url.QueryEscape(q.ReturnDate),
		q.Adults,
		url.QueryEscape(q.Currency))

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("amadeus search: %w", ErrRateLimited)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus search: %s", resp.Status)
	}

	var payload struct {
		Data []struct {
			Price struct {
				GrandTotal string `json:"grandTotal"`
				Total      string `json:"total"`
			} `json:"price"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	var out []Offer
	for _, d := range payload.Data {
		raw := d.Price.GrandTotal
		if raw == "" {
			raw = d.Price.Total
		}
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		out = append(out, Offer{TotalPrice: price, Currency: q.Currency})
	}
	return out, nil
}
