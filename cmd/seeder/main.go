//cmd/seeder/main.go
package main

import (
    "database/sql"
    "fmt"
    "io/ioutil"
    "log"

    _ "github.com/lib/pq"

    "github.com/unclebandit/campaignrouter-backend/internal/db"
)

func main() {
    conn, err := sql.Open("postgres", db.DSN())
    if err != nil {
        log.Fatal(err)
    }
    defer conn.Close()

    seedFiles := []string{
        "seed/schema.sql",
        "seed/requests.sql",
    }

    for _, file := range seedFiles {
        content, err := ioutil.ReadFile(file)
        if err != nil {
            log.Fatalf("failed to read %s: %v", file, err)
        }

        _, err = conn.Exec(string(content))
        if err != nil {
            log.Fatalf("failed to execute %s: %v", file, err)
        }
        fmt.Printf("Seeded: %s\n", file)
    }

    fmt.Println("Database seeding completed successfully!")
}
