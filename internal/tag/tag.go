// Package tag adds, removes and lists item context tags. Tags take part in
// search like any other item attribute.
package tag

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/stash/internal/service"
)

// Result contains the outcome of a tag operation.
type Result struct {
	Item      string   `json:"item,omitempty"`
	Container string   `json:"container,omitempty"`
	Tag       string   `json:"tag,omitempty"`
	Action    string   `json:"action,omitempty"`
	Tags      []string `json:"tags"`
}

// Add adds a tag to an item.
func Add(ctx context.Context, w io.Writer, svc service.Service, key, tag string) (Result, error) {
	return change(ctx, w, svc, key, tag, true)
}

// Remove removes a tag from an item.
func Remove(ctx context.Context, w io.Writer, svc service.Service, key, tag string) (Result, error) {
	return change(ctx, w, svc, key, tag, false)
}

func change(ctx context.Context, w io.Writer, svc service.Service, key, tag string, add bool) (Result, error) {
	result := Result{Item: key, Tag: tag, Action: "remove"}
	if add {
		result.Action = "add"
	}

	var err error
	if add {
		err = svc.Tag(ctx, key, tag)
	} else {
		err = svc.Untag(ctx, key, tag)
	}
	if err != nil {
		return result, err
	}

	it, err := svc.Item(ctx, key)
	if err != nil {
		return result, err
	}
	result.Container = it.Container
	result.Tags = it.Tags
	if result.Tags == nil {
		result.Tags = []string{}
	}

	if add {
		fmt.Fprintf(w, "Added tag %q to %s (%s)\n", tag, it.DisplayName(), it.Container)
	} else {
		fmt.Fprintf(w, "Removed tag %q from %s (%s)\n", tag, it.DisplayName(), it.Container)
	}
	return result, nil
}

// List lists the tags of an item, or every tag in use when key is empty.
func List(ctx context.Context, w io.Writer, svc service.Service, key string) (Result, error) {
	result := Result{Item: key}

	tags, err := svc.ListTags(ctx, key)
	if err != nil {
		return result, err
	}
	if tags == nil {
		tags = []string{}
	}
	result.Tags = tags

	for _, t := range tags {
		fmt.Fprintln(w, t)
	}
	return result, nil
}
