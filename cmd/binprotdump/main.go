// Package main provides a command-line utility to dump the frames of a
// length-prefixed bin_prot stream. It reports each frame's byte length and a
// hex/ASCII dump of its payload, for inspecting wire traffic while a schema
// isn't known up front.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/binprotio/binprot/internal/streamio"
)

func main() {
	maxFrames := flag.Int("frames", 0, "Maximum number of frames to dump (0 = unlimited)")
	bufSize := flag.Int("bufsize", 4096, "Initial scratch buffer size in bytes")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: binprotdump [flags] <file>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	f, err := os.Open(args[0])
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close file: %v", err)
		}
	}()

	buf := streamio.NewBuffer(*bufSize)
	defer buf.Release()

	var offset int64
	for frameIdx := 0; *maxFrames == 0 || frameIdx < *maxFrames; frameIdx++ {
		var payload bytes.Buffer
		err := buf.ReadFramed(f, func(r io.Reader) error {
			_, err := io.Copy(&payload, r)
			return err
		})
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Frame %d at offset 0x%x: %v", frameIdx, offset, err)
		}

		fmt.Printf("frame %d: offset 0x%x, %d bytes\n", frameIdx, offset, payload.Len())
		hexDump(payload.Bytes(), offset+8)
		offset += 8 + int64(payload.Len())
	}
}

func hexDump(b []byte, base int64) {
	for i := 0; i < len(b); i += 16 {
		end := i + 16
		if end > len(b) {
			end = len(b)
		}
		chunk := b[i:end]

		fmt.Printf("  %08x: ", base+int64(i))
		for j := 0; j < 16; j++ {
			if j < len(chunk) {
				fmt.Printf("%02x ", chunk[j])
			} else {
				fmt.Print("   ")
			}
			if j == 7 {
				fmt.Print(" ")
			}
		}
		fmt.Print(" |")
		for _, c := range chunk {
			if c >= 32 && c <= 126 {
				fmt.Printf("%c", c)
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println("|")
	}
}
