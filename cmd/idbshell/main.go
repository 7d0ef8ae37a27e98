//go:build js && wasm

// Command idbshell is the console shell compiled to WebAssembly. Build it
// with GOOS=js GOARCH=wasm and serve it as /static/idbshell.wasm next to
// wasm_exec.js.
package main

import (
	"context"
	"syscall/js"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idepositbox/console/internal/client"
	"github.com/idepositbox/console/internal/jsdom"
	"github.com/idepositbox/console/internal/logging"
	"github.com/idepositbox/console/internal/shell"
)

func main() {
	log, err := logging.New(zapcore.InfoLevel)
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()

	doc := js.Global().Get("document")
	nav, err := jsdom.FindNav(doc, "#menu")
	if err != nil {
		log.Error("shell not started", zap.Error(err))
		return
	}
	content, err := jsdom.FindContent(doc, ".main_content")
	if err != nil {
		log.Error("shell not started", zap.Error(err))
		return
	}

	location := js.Global().Get("location")
	c := client.New(location.Get("origin").String(), client.WithLogger(log))
	s := shell.New(c, nav, content, log)

	if err := s.LoadMenu(context.Background(), location.Get("pathname").String()); err != nil {
		log.Warn("initial load failed", zap.Error(err))
	}

	// Keep the module alive so click callbacks keep working.
	select {}
}
