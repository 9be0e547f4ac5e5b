// Package testing provides a testing SDK for running userd in Go tests.
//
// This package makes it easy to boot a real user API server inside a test,
// seed it with records, and talk to it through the typed client without
// managing ports, goroutines, or cleanup yourself.
//
// # Basic Usage
//
// Create a server, seed it, and make requests:
//
//	func TestMyIntegration(t *testing.T) {
//	    srv := testing.New(t).
//	        Seed("Alice", "alice@example.com").
//	        Seed("Bob", "bob@example.com")
//
//	    url := srv.Start()
//
//	    resp, err := http.Get(url + "/users/1")
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer resp.Body.Close()
//	}
//
// The server stops automatically when the test finishes; calling Stop
// earlier is allowed but not required.
//
// # Typed Client
//
// Client returns a ready-made client pointed at the running server:
//
//	srv := testing.New(t)
//	srv.Start()
//
//	user, err := srv.Client().CreateUser("Carol", "carol@example.com")
//	if err != nil {
//	    t.Fatal(err)
//	}
//
// # Assertions
//
// Verify server state after exercising your code:
//
//	srv.AssertUserCount(t, 3)
//	srv.AssertUserExists(t, user.ID)
//	srv.AssertNoUser(t, 9999)
//
// # Resetting Between Cases
//
// Reset drops every record created during the test and re-applies the
// seeds, so table-driven tests can share one server:
//
//	for _, tc := range cases {
//	    t.Run(tc.name, func(t *testing.T) {
//	        srv.Reset()
//	        // ... run the case against srv.URL() ...
//	    })
//	}
package testing
