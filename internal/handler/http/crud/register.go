package crud

import (
	"net/http"

	"campus-api/internal/handler/http/auth"
)

// Routes holds the five handlers of one resource.
type Routes struct {
	List   http.HandlerFunc
	Create http.HandlerFunc
	Get    http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

// Mount registers rt under /api/<resource>. Reads require access.Read and
// writes access.Write.
//
//	GET    /api/<resource>/all
//	POST   /api/<resource>/post?<fields>
//	GET    /api/<resource>?<key>=
//	PUT    /api/<resource>?<key>=
//	DELETE /api/<resource>?<key>=
func Mount(mux *http.ServeMux, resource string, access auth.Access, rt Routes) {
	base := "/api/" + resource
	read := auth.RequireRole(access.Read)
	write := auth.RequireRole(access.Write)

	mux.Handle("GET "+base+"/all", read(rt.List))
	mux.Handle("POST "+base+"/post", write(rt.Create))
	mux.Handle("GET "+base, read(rt.Get))
	mux.Handle("PUT "+base, write(rt.Update))
	mux.Handle("DELETE "+base, write(rt.Delete))
}
