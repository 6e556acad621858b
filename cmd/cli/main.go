// Command cf is a CLI client for the ContentForge service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/avaskin/contentforge/internal/apiclient"
	"github.com/avaskin/contentforge/internal/model"
	"github.com/avaskin/contentforge/internal/session"
)

// ---- utils ----

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func defaultBaseURL() string {
	if v := os.Getenv("CONTENTFORGE_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8000"
}

func usage() {
	fmt.Fprintf(os.Stderr, `cf CLI
Usage:
  cf [-url http://host:port] <cmd> [args]

Commands:
  version
  register   -u <email> -p <password>        (registers and logs in)
  login      -u <email> -p <password>        (saves token)
  logout                                     (clears saved token)
  whoami
  generate   -type blog|email|social -tone <tone> -len short|medium|long
             -product <text> -audience <text> [-extra <text>]
  history
  show       -id <n>
  rm         -id <n>
  health
`)
	os.Exit(2)
}

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands over the shared client and session manager.
func main() {
	baseURL := flag.String("url", defaultBaseURL(), "API base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	client := apiclient.New(*baseURL)
	mgr := session.NewManager(client, session.NewFileStore())
	client.SetTokenSource(mgr)

	switch cmd {

	case "version":
		fmt.Printf("cf %s (%s)\n", version, buildDate)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		u := fs.String("u", "", "email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *u == "" || *p == "" {
			fmt.Fprintln(os.Stderr, "need -u and -p")
			os.Exit(1)
		}

		if err := mgr.Register(ctx, *u, *p); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		u := fs.String("u", "", "email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *u == "" || *p == "" {
			fmt.Fprintln(os.Stderr, "need -u and -p")
			os.Exit(1)
		}

		if err := mgr.Login(ctx, *u, *p); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "logout":
		mgr.Logout()
		fmt.Println("ok")

	case "whoami":
		s := mgr.Current()
		if !s.Authenticated() {
			fmt.Println("not logged in")
			os.Exit(1)
		}
		if s.User != nil {
			fmt.Println(s.User.Email)
		} else {
			fmt.Println("logged in (saved token)")
		}

	case "generate":
		fs := flag.NewFlagSet("generate", flag.ExitOnError)
		ctype := fs.String("type", "blog", "content type: blog|email|social")
		tone := fs.String("tone", "casual", "tone: formal|casual|funny|persuasive")
		length := fs.String("len", "medium", "length: short|medium|long")
		product := fs.String("product", "", "product or topic")
		audience := fs.String("audience", "", "target audience")
		extra := fs.String("extra", "", "extra instructions")
		_ = fs.Parse(flag.Args()[1:])
		if *product == "" || *audience == "" {
			fmt.Fprintln(os.Stderr, "need -product and -audience")
			os.Exit(1)
		}

		res, err := client.GenerateContent(ctx, model.GenerationRequest{
			ContentType:       model.ContentType(*ctype),
			Tone:              model.Tone(*tone),
			Length:            model.Length(*length),
			Product:           *product,
			Audience:          *audience,
			ExtraInstructions: *extra,
		})
		if err != nil {
			fail(err)
		}
		fmt.Println(res.GeneratedContent)
		fmt.Fprintf(os.Stderr, "saved as id %d (model %s)\n", res.ID, res.ModelUsed)

	case "history":
		items, err := client.History(ctx)
		if err != nil {
			fail(err)
		}
		type row struct {
			ID        int64  `json:"id"`
			Type      string `json:"type"`
			Product   string `json:"product"`
			CreatedAt string `json:"created_at"`
		}
		rows := []row{}
		for _, it := range items {
			rows = append(rows, row{
				ID:        it.ID,
				Type:      string(it.ContentType),
				Product:   it.Product,
				CreatedAt: it.CreatedAt.Format(time.RFC3339),
			})
		}
		printJSON(rows)

	case "show":
		fs := flag.NewFlagSet("show", flag.ExitOnError)
		id := fs.Int64("id", 0, "content id")
		_ = fs.Parse(flag.Args()[1:])
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}

		item, err := client.ContentByID(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(item)

	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "content id")
		_ = fs.Parse(flag.Args()[1:])
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}

		if err := client.DeleteContent(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "health":
		hs, err := client.Health(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(hs)

	default:
		usage()
	}
}
