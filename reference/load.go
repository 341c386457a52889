/*
Copyright © 2026 the erica authors.
This file is part of erica.

erica is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

erica is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with erica.  If not, see <http://www.gnu.org/licenses/>.
*/

package reference

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/ctessum/requestcache"
)

// tableCache holds previously loaded reference tables to avoid reading
// the same file more than once.
var tableCache *requestcache.Cache

var loadTableCacheOnce sync.Once

// Load reads the reference table in fileName, which can be a TOML
// (.toml) or Microsoft Excel (.xlsx) file. Environment variables in
// fileName are expanded. Tables are cached by file name, so the
// returned table is shared and must not be modified.
func Load(fileName string) (*Table, error) {
	loadTableCacheOnce.Do(func() {
		tableCache = requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			return readFile(req.(string))
		}, runtime.GOMAXPROCS(-1), requestcache.Deduplicate(), requestcache.Memory(20))
	})
	fileName = os.ExpandEnv(fileName)
	r := tableCache.NewRequest(context.Background(), fileName, fileName)
	t, err := r.Result()
	if err != nil {
		return nil, err
	}
	return t.(*Table), nil
}

func readFile(fileName string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".toml":
		f, err := os.Open(fileName)
		if err != nil {
			return nil, fmt.Errorf("reference: %v", err)
		}
		defer f.Close()
		return ReadTOML(f)
	case ".xlsx":
		return ReadExcel(fileName)
	default:
		return nil, fmt.Errorf("reference: unsupported file type %q for %s", ext, fileName)
	}
}
