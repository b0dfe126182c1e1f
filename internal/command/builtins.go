package command

// builtinDocs covers the commands most used over the REST endpoint. Anything
// else the server reports through COMMAND is merged in at runtime.
var builtinDocs = []CommandDoc{
	{Command: "APPEND", Summary: "Append a value to a key", Arguments: "key value", Since: "2.0.0", Group: "string"},
	{Command: "DECR", Summary: "Decrement the integer value of a key by one", Arguments: "key", Since: "1.0.0", Group: "string"},
	{Command: "DECRBY", Summary: "Decrement the integer value of a key by the given number", Arguments: "key decrement", Since: "1.0.0", Group: "string"},
	{Command: "GET", Summary: "Get the value of a key", Arguments: "key", Since: "1.0.0", Group: "string"},
	{Command: "GETDEL", Summary: "Get the value of a key and delete the key", Arguments: "key", Since: "6.2.0", Group: "string"},
	{Command: "GETRANGE", Summary: "Get a substring of the string stored at a key", Arguments: "key start end", Since: "2.4.0", Group: "string"},
	{Command: "INCR", Summary: "Increment the integer value of a key by one", Arguments: "key", Since: "1.0.0", Group: "string"},
	{Command: "INCRBY", Summary: "Increment the integer value of a key by the given amount", Arguments: "key increment", Since: "1.0.0", Group: "string"},
	{Command: "INCRBYFLOAT", Summary: "Increment the float value of a key by the given amount", Arguments: "key increment", Since: "2.6.0", Group: "string"},
	{Command: "MGET", Summary: "Get the values of all the given keys", Arguments: "key [key ...]", Since: "1.0.0", Group: "string"},
	{Command: "MSET", Summary: "Set multiple keys to multiple values", Arguments: "key value [key value ...]", Since: "1.0.1", Group: "string"},
	{Command: "SET", Summary: "Set the string value of a key", Arguments: "key value [NX|XX] [GET] [EX seconds|PX milliseconds|KEEPTTL]", Since: "1.0.0", Group: "string"},
	{Command: "SETNX", Summary: "Set the value of a key, only if the key does not exist", Arguments: "key value", Since: "1.0.0", Group: "string"},
	{Command: "STRLEN", Summary: "Get the length of the value stored in a key", Arguments: "key", Since: "2.2.0", Group: "string"},

	{Command: "DEL", Summary: "Delete a key", Arguments: "key [key ...]", Since: "1.0.0", Group: "generic"},
	{Command: "EXISTS", Summary: "Determine if a key exists", Arguments: "key [key ...]", Since: "1.0.0", Group: "generic"},
	{Command: "EXPIRE", Summary: "Set a key's time to live in seconds", Arguments: "key seconds [NX|XX|GT|LT]", Since: "1.0.0", Group: "generic"},
	{Command: "KEYS", Summary: "Find all keys matching the given pattern", Arguments: "pattern", Since: "1.0.0", Group: "generic"},
	{Command: "PERSIST", Summary: "Remove the expiration from a key", Arguments: "key", Since: "2.2.0", Group: "generic"},
	{Command: "PEXPIRE", Summary: "Set a key's time to live in milliseconds", Arguments: "key milliseconds", Since: "2.6.0", Group: "generic"},
	{Command: "PTTL", Summary: "Get the time to live for a key in milliseconds", Arguments: "key", Since: "2.6.0", Group: "generic"},
	{Command: "RANDOMKEY", Summary: "Return a random key from the keyspace", Since: "1.0.0", Group: "generic"},
	{Command: "RENAME", Summary: "Rename a key", Arguments: "key newkey", Since: "1.0.0", Group: "generic"},
	{Command: "SCAN", Summary: "Incrementally iterate the keys space", Arguments: "cursor [MATCH pattern] [COUNT count] [TYPE type]", Since: "2.8.0", Group: "generic"},
	{Command: "TTL", Summary: "Get the time to live for a key in seconds", Arguments: "key", Since: "1.0.0", Group: "generic"},
	{Command: "TYPE", Summary: "Determine the type stored at key", Arguments: "key", Since: "1.0.0", Group: "generic"},
	{Command: "UNLINK", Summary: "Delete a key asynchronously", Arguments: "key [key ...]", Since: "4.0.0", Group: "generic"},

	{Command: "HDEL", Summary: "Delete one or more hash fields", Arguments: "key field [field ...]", Since: "2.0.0", Group: "hash"},
	{Command: "HEXISTS", Summary: "Determine if a hash field exists", Arguments: "key field", Since: "2.0.0", Group: "hash"},
	{Command: "HGET", Summary: "Get the value of a hash field", Arguments: "key field", Since: "2.0.0", Group: "hash"},
	{Command: "HGETALL", Summary: "Get all the fields and values in a hash", Arguments: "key", Since: "2.0.0", Group: "hash"},
	{Command: "HINCRBY", Summary: "Increment the integer value of a hash field", Arguments: "key field increment", Since: "2.0.0", Group: "hash"},
	{Command: "HKEYS", Summary: "Get all the fields in a hash", Arguments: "key", Since: "2.0.0", Group: "hash"},
	{Command: "HLEN", Summary: "Get the number of fields in a hash", Arguments: "key", Since: "2.0.0", Group: "hash"},
	{Command: "HSCAN", Summary: "Incrementally iterate hash fields and associated values", Arguments: "key cursor [MATCH pattern] [COUNT count]", Since: "2.8.0", Group: "hash"},
	{Command: "HSET", Summary: "Set the value of one or more hash fields", Arguments: "key field value [field value ...]", Since: "2.0.0", Group: "hash"},
	{Command: "HVALS", Summary: "Get all the values in a hash", Arguments: "key", Since: "2.0.0", Group: "hash"},

	{Command: "LINDEX", Summary: "Get an element from a list by its index", Arguments: "key index", Since: "1.0.0", Group: "list"},
	{Command: "LLEN", Summary: "Get the length of a list", Arguments: "key", Since: "1.0.0", Group: "list"},
	{Command: "LPOP", Summary: "Remove and get the first elements in a list", Arguments: "key [count]", Since: "1.0.0", Group: "list"},
	{Command: "LPUSH", Summary: "Prepend one or multiple elements to a list", Arguments: "key element [element ...]", Since: "1.0.0", Group: "list"},
	{Command: "LRANGE", Summary: "Get a range of elements from a list", Arguments: "key start stop", Since: "1.0.0", Group: "list"},
	{Command: "LREM", Summary: "Remove elements from a list", Arguments: "key count element", Since: "1.0.0", Group: "list"},
	{Command: "RPOP", Summary: "Remove and get the last elements in a list", Arguments: "key [count]", Since: "1.0.0", Group: "list"},
	{Command: "RPUSH", Summary: "Append one or multiple elements to a list", Arguments: "key element [element ...]", Since: "1.0.0", Group: "list"},

	{Command: "SADD", Summary: "Add one or more members to a set", Arguments: "key member [member ...]", Since: "1.0.0", Group: "set"},
	{Command: "SCARD", Summary: "Get the number of members in a set", Arguments: "key", Since: "1.0.0", Group: "set"},
	{Command: "SISMEMBER", Summary: "Determine if a given value is a member of a set", Arguments: "key member", Since: "1.0.0", Group: "set"},
	{Command: "SMEMBERS", Summary: "Get all the members in a set", Arguments: "key", Since: "1.0.0", Group: "set"},
	{Command: "SPOP", Summary: "Remove and return one or multiple random members from a set", Arguments: "key [count]", Since: "1.0.0", Group: "set"},
	{Command: "SREM", Summary: "Remove one or more members from a set", Arguments: "key member [member ...]", Since: "1.0.0", Group: "set"},
	{Command: "SSCAN", Summary: "Incrementally iterate Set elements", Arguments: "key cursor [MATCH pattern] [COUNT count]", Since: "2.8.0", Group: "set"},

	{Command: "ZADD", Summary: "Add one or more members to a sorted set", Arguments: "key [NX|XX] [GT|LT] [CH] [INCR] score member [score member ...]", Since: "1.2.0", Group: "sorted-set"},
	{Command: "ZCARD", Summary: "Get the number of members in a sorted set", Arguments: "key", Since: "1.2.0", Group: "sorted-set"},
	{Command: "ZINCRBY", Summary: "Increment the score of a member in a sorted set", Arguments: "key increment member", Since: "1.2.0", Group: "sorted-set"},
	{Command: "ZRANGE", Summary: "Return a range of members in a sorted set", Arguments: "key start stop [BYSCORE|BYLEX] [REV] [LIMIT offset count] [WITHSCORES]", Since: "1.2.0", Group: "sorted-set"},
	{Command: "ZRANK", Summary: "Determine the index of a member in a sorted set", Arguments: "key member", Since: "2.0.0", Group: "sorted-set"},
	{Command: "ZREM", Summary: "Remove one or more members from a sorted set", Arguments: "key member [member ...]", Since: "1.2.0", Group: "sorted-set"},
	{Command: "ZSCAN", Summary: "Incrementally iterate sorted sets elements and associated scores", Arguments: "key cursor [MATCH pattern] [COUNT count]", Since: "2.8.0", Group: "sorted-set"},
	{Command: "ZSCORE", Summary: "Get the score associated with the given member in a sorted set", Arguments: "key member", Since: "1.2.0", Group: "sorted-set"},

	{Command: "DISCARD", Summary: "Discard all commands issued after MULTI", Since: "2.0.0", Group: "transactions"},
	{Command: "EXEC", Summary: "Execute all commands issued after MULTI", Since: "1.2.0", Group: "transactions"},
	{Command: "MULTI", Summary: "Mark the start of a transaction block", Since: "1.2.0", Group: "transactions"},

	{Command: "PUBLISH", Summary: "Post a message to a channel", Arguments: "channel message", Since: "2.0.0", Group: "pubsub"},

	{Command: "EVAL", Summary: "Execute a Lua script server side", Arguments: "script numkeys [key ...] [arg ...]", Since: "2.6.0", Group: "scripting"},
	{Command: "EVALSHA", Summary: "Execute a Lua script server side", Arguments: "sha1 numkeys [key ...] [arg ...]", Since: "2.6.0", Group: "scripting"},

	{Command: "CLIENT INFO", Summary: "Returns information about the current client connection", Since: "6.2.0", Group: "connection"},
	{Command: "ECHO", Summary: "Echo the given string", Arguments: "message", Since: "1.0.0", Group: "connection"},
	{Command: "PING", Summary: "Ping the server", Arguments: "[message]", Since: "1.0.0", Group: "connection"},

	{Command: "COMMAND", Summary: "Get array of command details", Since: "2.8.13", Group: "server"},
	{Command: "CONFIG GET", Summary: "Get the values of configuration parameters", Arguments: "parameter [parameter ...]", Since: "2.0.0", Group: "server"},
	{Command: "DBSIZE", Summary: "Return the number of keys in the selected database", Since: "1.0.0", Group: "server"},
	{Command: "FLUSHALL", Summary: "Remove all keys from all databases", Arguments: "[ASYNC|SYNC]", Since: "1.0.0", Group: "server"},
	{Command: "FLUSHDB", Summary: "Remove all keys from the current database", Arguments: "[ASYNC|SYNC]", Since: "1.0.0", Group: "server"},
	{Command: "INFO", Summary: "Get information and statistics about the server", Arguments: "[section ...]", Since: "1.0.0", Group: "server"},
	{Command: "TIME", Summary: "Return the current server time", Since: "2.6.0", Group: "server"},
}

// appDocs are handled by the CLI itself and never sent as-is.
var appDocs = []CommandDoc{
	{Command: "EXIT", Summary: "Exit the application", Group: "application"},
	{Command: "HELP", Summary: "Show help for a command", Arguments: "[command]", Group: "application"},
	{Command: "CLEAR", Summary: "Clear the screen", Group: "application"},
	{Command: "SAFEKEYS", Summary: "Safely iterate over keys using SCAN", Arguments: "[pattern]", Group: "application"},
	{Command: "VIEW", Summary: "View the contents of a key", Arguments: "key", Group: "application"},
	{Command: "EXPORT", Summary: "Export the result of a command to a file", Arguments: "file command [args...]", Group: "application"},
	{Command: "PIPELINE", Summary: "Queue commands until EXEC and send them in one request", Group: "application"},
}

var dangerousCommands = []string{
	"FLUSHDB", "FLUSHALL", "KEYS", "PEXPIRE", "DEL", "UNLINK", "CONFIG",
	"SHUTDOWN", "BGREWRITEAOF", "BGSAVE", "SAVE", "SPOP", "SREM",
	"RENAME", "DEBUG", "EVAL", "EVALSHA",
}
