// Package base44 implementa os contratos de persistência contra a API de
// entidades do backend hospedado. É a implementação de produção; o
// armazenamento in-memory cobre testes e desenvolvimento.
package base44

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lucaspascoa/novoteste/internal/repository"
)

// Client acesso HTTP à API de entidades (CRUD + filtro por igualdade) e ao
// endpoint genérico de upload de arquivos.
type Client struct {
	http  *resty.Client
	appID string
}

// New cria o cliente autenticado por api_key
func New(baseURL, appID, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("api_key", apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	return &Client{http: c, appID: appID}
}

func (c *Client) entityPath(entity string) string {
	return fmt.Sprintf("/api/apps/%s/entities/%s", c.appID, entity)
}

// list busca todas as entidades do tipo, com filtros de igualdade opcionais
func (c *Client) list(ctx context.Context, entity string, filter map[string]string, out any) error {
	req := c.http.R().SetContext(ctx).SetResult(out)
	for k, v := range filter {
		req.SetQueryParam(k, v)
	}
	resp, err := req.Get(c.entityPath(entity))
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

func (c *Client) get(ctx context.Context, entity, id string, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetResult(out).
		Get(c.entityPath(entity) + "/" + id)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

func (c *Client) create(ctx context.Context, entity string, body, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(out).
		Post(c.entityPath(entity))
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

func (c *Client) update(ctx context.Context, entity, id string, body, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(out).
		Put(c.entityPath(entity) + "/" + id)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

func (c *Client) delete(ctx context.Context, entity, id string) error {
	resp, err := c.http.R().SetContext(ctx).
		Delete(c.entityPath(entity) + "/" + id)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// UploadResult resposta do endpoint de upload
type UploadResult struct {
	FileURL string `json:"file_url"`
}

// UploadFile envia um arquivo e devolve a URL pública
func (c *Client) UploadFile(ctx context.Context, filename string, content []byte) (*UploadResult, error) {
	var out UploadResult
	resp, err := c.http.R().SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(content)).
		SetResult(&out).
		Post(fmt.Sprintf("/api/apps/%s/files", c.appID))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func checkStatus(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return repository.ErrNotFound
	case resp.IsError():
		return fmt.Errorf("backend: %s: %s", resp.Status(), resp.String())
	}
	return nil
}
