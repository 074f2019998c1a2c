// Package seed loads establishments and specials from a YAML file and
// creates them through a running API.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the seed document:
//
//	establishments:
//	  - name: Bar One
//	    city: Austin
//	specials:
//	  - name: Wings
//	    startTime: "2024-01-01 16:00:00"
type File struct {
	Establishments []map[string]any `yaml:"establishments"`
	Specials       []map[string]any `yaml:"specials"`
}

func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return Parse(b)
}

func Parse(b []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return File{}, err
	}
	return f, nil
}

// Client posts entries to the API at Base.
type Client struct {
	Base string
	HTTP *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{
			Timeout:   15 * time.Second,
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
		},
	}
}

// Post creates one entry and returns the row the API echoed back.
func (c *Client) Post(ctx context.Context, resource string, entry map[string]any) (string, error) {
	b, err := json.Marshal(entry)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/v1/"+resource, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return strings.TrimSpace(string(body)), nil
}

// Run posts every establishment, then every special, writing one line per
// entry to out. It returns how many entries failed.
func Run(ctx context.Context, c *Client, f File, out io.Writer) int {
	failed := 0
	groups := []struct {
		resource string
		entries  []map[string]any
	}{
		{"establishments", f.Establishments},
		{"specials", f.Specials},
	}
	for _, g := range groups {
		for i, e := range g.entries {
			row, err := c.Post(ctx, g.resource, e)
			if err != nil {
				failed++
				fmt.Fprintf(out, "Failed to add %s #%d: %v\n", g.resource, i+1, err)
				continue
			}
			fmt.Fprintf(out, "Added %s #%d: %s\n", g.resource, i+1, row)
		}
	}
	return failed
}
