//go:build headless

package main

import "github.com/hbc2core/hbc2/devices"

// clipboardBridge is a no-op stand-in for headless builds, where no
// window toolkit (and so no clipboard) is available.
type clipboardBridge struct{}

func newClipboardBridge() *clipboardBridge { return &clipboardBridge{} }

func (c *clipboardBridge) paste(*devices.Keyboard) {}

func (c *clipboardBridge) copyScreen(*devices.Screen) {}
