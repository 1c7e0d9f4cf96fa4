package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jfuentes/recipebox/internal/models"
	usermodel "github.com/jfuentes/recipebox/internal/models/user"
)

// Client talks JSON to the API server. A token obtained from Login or
// Register is attached to every subsequent request.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr models.ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) Register(email, password, name string) (*usermodel.User, error) {
	var user usermodel.User
	err := c.do(http.MethodPost, "/user/create/", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(http.MethodPost, "/user/token/", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) Me() (*usermodel.User, error) {
	var user usermodel.User
	if err := c.do(http.MethodGet, "/user/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListTags() ([]models.Attribute, error) {
	var tags []models.Attribute
	if err := c.do(http.MethodGet, "/recipes/tags/", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) CreateTag(name string) (*models.Attribute, error) {
	var tag models.Attribute
	err := c.do(http.MethodPost, "/recipes/tags/", map[string]string{"name": name}, &tag)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (c *Client) ListIngredients() ([]models.Attribute, error) {
	var ingredients []models.Attribute
	if err := c.do(http.MethodGet, "/recipes/ingredients/", nil, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (c *Client) CreateIngredient(name string) (*models.Attribute, error) {
	var ingredient models.Attribute
	err := c.do(http.MethodPost, "/recipes/ingredients/", map[string]string{"name": name}, &ingredient)
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (c *Client) ListRecipes() ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := c.do(http.MethodGet, "/recipes/recipes/", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) CreateRecipe(req *models.CreateRecipeRequest) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := c.do(http.MethodPost, "/recipes/recipes/", req, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) DeleteRecipe(id string) error {
	return c.do(http.MethodDelete, "/recipes/recipes/"+id+"/", nil, nil)
}

// ResolveTagNames maps comma-separated tag names onto ids, creating
// any tag the user does not have yet.
func (c *Client) ResolveTagNames(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	existing, err := c.ListTags()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(existing))
	for _, tag := range existing {
		byName[tag.Name] = tag.ID
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
			continue
		}
		tag, err := c.CreateTag(name)
		if err != nil {
			return nil, err
		}
		byName[name] = tag.ID
		ids = append(ids, tag.ID)
	}
	return ids, nil
}
