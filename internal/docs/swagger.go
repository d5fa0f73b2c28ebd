/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package docs

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/gravitycar/api-core/internal/metadata"
)

// Mount serves the generated OpenAPI document at specPath and a Swagger UI
// at uiPath, regenerating the document fresh on every spec request so it
// always reflects the currently loaded model metadata.
func Mount(r chi.Router, info Info, models *metadata.Engine, uiPath, specPath string) {
	r.Get(specPath, func(w http.ResponseWriter, _ *http.Request) {
		doc := Generate(info, models)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			http.Error(w, "failed to encode OpenAPI document", http.StatusInternalServerError)
		}
	})

	r.Get(uiPath+"/*", httpSwagger.Handler(httpSwagger.URL(specPath)))

	log.Printf("Swagger UI available at %s", uiPath)
	log.Printf("OpenAPI spec available at %s", specPath)
}
