/*
 * Copyright 2024 The TickerFlow Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package filter provides the record filtering and routing components:
//
// - Filter: keeps or removes records by combining field conditions
// - Switch: routes each record to one of four outputs by ordered rules or a router expression
// - JsSwitch: routes each record by a JavaScript function returning an output index
// - ExprFilter: keeps records for which an expr program returns true
//
// Each component is registered with the package Registry, which the default
// registry in the root package aggregates. Configuration example for a rule
// chain definition:
//
//	{
//	  "id": "node1",
//	  "type": "switch",
//	  "configuration": {
//	    "mode": "rules",
//	    "rules": [
//	      {"field": "sector", "operator": "equal", "value": "tech", "output": 0}
//	    ],
//	    "fallbackOutput": 3
//	  }
//	}
package filter

import (
	"github.com/tickerflow/tickerflow/api/types"
)

// Registry filter包的组件注册器
// Registry collects the components of this package.
var Registry = new(types.SafeComponentSlice)
