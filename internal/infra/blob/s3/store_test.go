package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"restaurantcore/internal/blob/core"
)

type fakeObject struct {
	body        []byte
	contentType string
	meta        http.Header
}

// fakeBucket answers the subset of the S3 REST API the store uses.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]fakeObject
}

func response(status int, body []byte, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{StatusCode: status, Header: header, Body: io.NopCloser(bytes.NewReader(body))}
}

func (b *fakeBucket) RoundTrip(req *http.Request) (*http.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		return b.list(req.URL.Query().Get("prefix")), nil
	}
	switch req.Method {
	case http.MethodHead, http.MethodGet:
		obj, ok := b.objects[key]
		if !ok {
			return response(http.StatusNotFound, nil, nil), nil
		}
		header := http.Header{
			"Content-Length": {strconv.Itoa(len(obj.body))},
			"Content-Type":   {obj.contentType},
			"Last-Modified":  {"Mon, 01 Jan 2024 00:00:00 GMT"},
		}
		for k, v := range obj.meta {
			header[k] = v
		}
		if req.Method == http.MethodHead {
			return response(http.StatusOK, nil, header), nil
		}
		return response(http.StatusOK, obj.body, header), nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if decoded, ok := dechunk(body); ok {
			body = decoded
		}
		meta := http.Header{}
		for k, v := range req.Header {
			if strings.HasPrefix(strings.ToLower(k), "x-amz-meta-") {
				meta[k] = v
			}
		}
		b.objects[key] = fakeObject{body: body, contentType: req.Header.Get("Content-Type"), meta: meta}
		return response(http.StatusOK, nil, nil), nil
	case http.MethodDelete:
		delete(b.objects, key)
		return response(http.StatusNoContent, nil, nil), nil
	}
	return response(http.StatusNotImplemented, nil, nil), nil
}

func (b *fakeBucket) list(prefix string) *http.Response {
	var keys []string
	for k := range b.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	var out strings.Builder
	out.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult><IsTruncated>false</IsTruncated>`)
	for _, k := range keys {
		fmt.Fprintf(&out, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>", k, len(b.objects[k].body))
	}
	out.WriteString("</ListBucketResult>")
	return response(http.StatusOK, []byte(out.String()), http.Header{"Content-Type": {"application/xml"}})
}

// dechunk strips aws-chunked framing from a single-chunk upload.
func dechunk(body []byte) ([]byte, bool) {
	lines := strings.Split(string(body), "\r\n")
	if len(lines) < 3 {
		return nil, false
	}
	size, err := strconv.ParseInt(strings.SplitN(lines[0], ";", 2)[0], 16, 64)
	if err != nil || size <= 0 || int64(len(lines[1])) != size {
		return nil, false
	}
	return []byte(lines[1]), true
}

func newFakeStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(context.Background(), Config{
		Bucket:          "restaurant-backups",
		Endpoint:        "https://s3.test.local",
		PathStyle:       true,
		AccessKeyID:     "AKIDTEST",
		SecretAccessKey: "SECRET",
		HTTPClient:      &http.Client{Transport: &fakeBucket{objects: make(map[string]fakeObject)}},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return store
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected missing bucket error")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(t)
	if store.Driver() != core.DriverS3 || store.Bucket() != "restaurant-backups" {
		t.Fatalf("unexpected store identity %s %s", store.Driver(), store.Bucket())
	}
	info, err := store.Put(ctx, "snapshots/a.json", strings.NewReader("hello"), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "snapshots/a.json" || info.Size != 5 || info.ContentType != "application/json" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := store.Put(ctx, "snapshots/a.json", strings.NewReader("again"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	_, rc, err := store.Get(ctx, "snapshots/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "hello" {
		t.Fatalf("unexpected body %q", body)
	}
	if _, err := store.Put(ctx, "snapshots/b.json", strings.NewReader("{}"), core.PutOptions{}); err != nil {
		t.Fatalf("put second: %v", err)
	}
	infos, err := store.List(ctx, "snapshots/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "snapshots/a.json" {
		t.Fatalf("expected sorted keys, got %+v", infos)
	}
}

func TestStoreMissingKeys(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(t)
	if _, err := store.Head(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from head, got %v", err)
	}
	if _, _, err := store.Get(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from get, got %v", err)
	}
	if ok, err := store.Delete(ctx, "nope"); err != nil || ok {
		t.Fatalf("expected delete of missing key to report false, got %v %v", ok, err)
	}
	if _, err := store.Put(ctx, "k", strings.NewReader("v"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ok, err := store.Delete(ctx, "k"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
}
