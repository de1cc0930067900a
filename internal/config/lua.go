package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// loadLuaFile runs a Lua config script and copies the globals it sets:
//
//	port = 9000
//	log_level = "debug"
//	broadcast_buffer = 64
//	input_buffer = 128
//	origins = { "http://localhost:9000" }
func loadLuaFile(c *Config, path string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("run lua config %s: %w", path, err)
	}
	return applyLuaGlobals(c, L)
}

func applyLuaGlobals(c *Config, L *lua.LState) error {
	switch v := L.GetGlobal("port").(type) {
	case lua.LString:
		c.Port = string(v)
	case lua.LNumber:
		c.Port = v.String()
	}

	if v, ok := L.GetGlobal("log_level").(lua.LString); ok {
		level, err := parseLogLevel(string(v))
		if err != nil {
			return err
		}
		c.LogLevel = level
	}
	if v, ok := L.GetGlobal("log_format").(lua.LString); ok {
		c.LogFormat = string(v)
	}

	for name, dst := range map[string]*int{
		"broadcast_buffer": &c.BroadcastBuffer,
		"input_buffer":     &c.InputBuffer,
	} {
		v := L.GetGlobal(name)
		if v == lua.LNil {
			continue
		}
		n, ok := v.(lua.LNumber)
		if !ok || int(n) < 1 {
			return fmt.Errorf("invalid lua %s %s: must be a positive number", name, v.String())
		}
		*dst = int(n)
	}

	if t, ok := L.GetGlobal("origins").(*lua.LTable); ok {
		var origins []string
		t.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok && s != "" {
				origins = append(origins, string(s))
			}
		})
		c.AllowOrigins = origins
	}
	return nil
}
