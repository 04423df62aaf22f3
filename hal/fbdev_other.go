//go:build !linux

package hal

import (
	"context"
	"errors"
)

func RunDevice(_ context.Context, _ int, _ func(HAL) (func() error, error), _ HeadlessConfig) error {
	return errors.New("framebuffer device mode is only available on linux")
}
