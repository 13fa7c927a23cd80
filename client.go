package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/functils/functils/errors"
	"github.com/functils/functils/log"
	"github.com/functils/functils/script"
)

// FunctilsClient talks to a local functils server.
type FunctilsClient struct {
	baseURL string
	out     io.Writer
}

// NewClient returns a client for the server on localhost at port. Responses go to stdout.
func NewClient(port string) FunctilsClient {
	return FunctilsClient{baseURL: "http://localhost:" + port, out: os.Stdout}
}

// Eval sends a script to run.
func (c FunctilsClient) Eval(ctx context.Context, req *script.Request) error {
	return doClientRequest[evalResponse](ctx, c, http.MethodPost, "eval", req)
}

// Lists requests the names of stored lists.
func (c FunctilsClient) Lists(ctx context.Context) error {
	return doClientRequest[listsResponse](ctx, c, http.MethodGet, "lists", nil)
}

// Delete requests removal of a stored list.
func (c FunctilsClient) Delete(ctx context.Context, name string) error {
	return doClientRequest[deleteResponse](ctx, c, http.MethodDelete,
		"lists/"+url.PathEscape(name), nil)
}

// Status requests the server status.
func (c FunctilsClient) Status(ctx context.Context) error {
	return doClientRequest[statusResponse](ctx, c, http.MethodGet, "status", nil)
}

func doClientRequest[T any](
	ctx context.Context,
	c FunctilsClient,
	method, path string,
	body any,
) error {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, path)

	data := []byte("")
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	log.Ctx(ctx).Debugf("%s /%s %s", method, path, string(data))

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request")
	}
	defer res.Body.Close()

	var resp T

	err = json.NewDecoder(res.Body).Decode(&resp)
	if err != nil {
		return errors.Wrap(err, "decode response")
	}

	j := json.NewEncoder(c.out)
	j.SetIndent("", "  ")
	err = j.Encode(resp)

	return errors.Wrap(err, "print response")
}
