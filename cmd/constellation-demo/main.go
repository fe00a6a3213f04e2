// Command constellation-demo is a minimal bootstrap that wires a
// Coordinator to an in-memory compositor and worker factory, drives one
// top-level load, one iframe load, and one back navigation, then prints
// the root pipeline of the last frame tree sent to the compositor. It is
// not a CLI framework; the only flag it
// accepts picks the initial URL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/arashed/constellation"
	"github.com/arashed/constellation/internal/compositor"
	"github.com/arashed/constellation/internal/imagecache"
	"github.com/arashed/constellation/internal/resource"
	"github.com/arashed/constellation/internal/worker"
)

func main() {
	startURL := flag.String("url", "https://example.com/", "initial page to load")
	flag.Parse()

	logf := func(format string, v ...interface{}) { log.Printf(format, v...) }

	comp := compositor.NewFake(constellation.Size{Width: 1024, Height: 768})
	workers := worker.NewFactory(logf)

	c, err := constellation.NewCoordinator(
		workers,
		constellation.WithCompositor(comp),
		constellation.WithResource(resource.New(logf)),
		constellation.WithImageCache(imagecache.New(logf)),
		constellation.WithLogf(logf),
		constellation.WithDebugf(logf),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "constellation-demo:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	u, err := url.Parse(*startURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "constellation-demo: bad url:", err)
		os.Exit(1)
	}

	send := func(m constellation.Msg) {
		c.Inbox() <- m
		// A real embedder would learn of completion via RendererReady;
		// the demo just gives the single goroutine time to settle.
		time.Sleep(10 * time.Millisecond)
	}

	send(constellation.InitLoadURLMsg{URL: u})
	send(constellation.RendererReadyMsg{Pipeline: 0})

	iframeURL, _ := url.Parse("https://example.com/frame")
	send(constellation.LoadIframeURLMsg{
		URL:     iframeURL,
		Source:  0,
		Subpage: 1,
		Size:    constellation.Size{Width: 300, Height: 200},
	})

	nextURL, _ := url.Parse("https://example.org/")
	send(constellation.LoadURLMsg{
		Source: 0,
		URL:    nextURL,
		Size:   constellation.Size{Width: 1024, Height: 768},
	})
	send(constellation.RendererReadyMsg{Pipeline: 2})

	send(constellation.NavigateMsg{Direction: constellation.Back})

	if last := comp.Last(); last != nil {
		fmt.Printf("last frame tree sent to compositor: pipeline %d (%s)\n",
			last.PipelineSnapshot.ID, last.PipelineSnapshot.URL)
	} else {
		fmt.Println("compositor received no frame tree")
	}

	reply := make(chan struct{})
	c.Inbox() <- constellation.ExitMsg{Reply: reply}
	<-reply
	<-c.Done()
}
