// LiveDocs CLI - Command line client for the LiveDocs document API
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TshiamoTodd/live-docs/clients/go/livedocs"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	baseURL := os.Getenv("LIVEDOCS_URL")
	userID := os.Getenv("LIVEDOCS_USER_ID")
	email := os.Getenv("LIVEDOCS_USER_EMAIL")

	client := livedocs.NewClient(baseURL, userID, email)
	cmd := os.Args[1]

	switch cmd {
	case "health":
		resp, err := client.Health()
		exitOnError(err)
		printJSON(resp)

	case "create":
		doc, err := client.CreateDocument()
		exitOnError(err)
		fmt.Printf("Created: %s\n", doc.ID)

	case "list":
		docs, err := client.ListDocuments()
		exitOnError(err)
		for _, doc := range docs {
			fmt.Printf("  %s  %-30s %s\n", doc.ID, doc.Metadata.Title, doc.Metadata.Email)
		}

	case "get":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: livedocs get <document_id>")
			os.Exit(1)
		}
		doc, err := client.GetDocument(os.Args[2])
		exitOnError(err)
		printJSON(doc)

	case "title":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: livedocs title <document_id> <new_title>")
			os.Exit(1)
		}
		doc, err := client.UpdateTitle(os.Args[2], strings.Join(os.Args[3:], " "))
		exitOnError(err)
		fmt.Printf("Renamed: %s\n", doc.Metadata.Title)

	case "share":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: livedocs share <document_id> <email> [editor|viewer]")
			os.Exit(1)
		}
		userType := "viewer"
		if len(os.Args) > 4 {
			userType = os.Args[4]
		}
		doc, err := client.Share(os.Args[2], os.Args[3], userType)
		exitOnError(err)
		fmt.Printf("Shared %s with %s as %s\n", doc.ID, os.Args[3], userType)

	case "unshare":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: livedocs unshare <document_id> <email>")
			os.Exit(1)
		}
		_, err := client.RemoveCollaborator(os.Args[2], os.Args[3])
		exitOnError(err)
		fmt.Printf("Removed %s from %s\n", os.Args[3], os.Args[2])

	case "collaborators":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: livedocs collaborators <document_id> [query]")
			os.Exit(1)
		}
		query := ""
		if len(os.Args) > 3 {
			query = os.Args[3]
		}
		emails, err := client.SearchCollaborators(os.Args[2], query)
		exitOnError(err)
		for _, e := range emails {
			fmt.Println("  " + e)
		}

	case "notifications":
		items, err := client.Notifications()
		exitOnError(err)
		for _, n := range items {
			ts := time.UnixMilli(n.Timestamp).Format("2006-01-02 15:04:05")
			fmt.Printf("[%s] %s shared %q with you as %s\n", ts, n.UpdatedBy, n.Title, n.Role)
		}

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`LiveDocs CLI - collaborative document API client

Usage: livedocs <command> [options]

Commands:
  create                          Create a new document
  list                            List your documents
  get <id>                        Show one document
  title <id> <new_title>          Rename a document
  share <id> <email> [role]       Share with a collaborator (editor|viewer)
  unshare <id> <email>            Revoke a collaborator
  collaborators <id> [query]      List or search collaborators
  notifications                   Show your share notifications
  health                          Check server health

Environment:
  LIVEDOCS_URL         Server URL (default: http://localhost:8080)
  LIVEDOCS_USER_ID     Your user ID from the identity provider
  LIVEDOCS_USER_EMAIL  Your email from the identity provider`)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printJSON(v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
