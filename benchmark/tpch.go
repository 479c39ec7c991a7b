package benchmark

var tpchTables = []Table{
	{Name: "nation", Columns: []Column{
		{"n_nationkey", "INT"},
		{"n_name", "TEXT"},
		{"n_regionkey", "INT"},
		{"n_comment", "TEXT"},
	}},
	{Name: "region", Columns: []Column{
		{"r_regionkey", "INT"},
		{"r_name", "TEXT"},
		{"r_comment", "TEXT"},
	}},
	{Name: "part", Columns: []Column{
		{"p_partkey", "INT"},
		{"p_name", "TEXT"},
		{"p_mfgr", "TEXT"},
		{"p_brand", "TEXT"},
		{"p_type", "TEXT"},
		{"p_size", "INT"},
		{"p_container", "TEXT"},
		{"p_retailprice", "DECIMAL(15,2)"},
		{"p_comment", "TEXT"},
	}},
	{Name: "supplier", Columns: []Column{
		{"s_suppkey", "INT"},
		{"s_name", "TEXT"},
		{"s_address", "TEXT"},
		{"s_nationkey", "INT"},
		{"s_phone", "TEXT"},
		{"s_acctbal", "DECIMAL(15,2)"},
		{"s_comment", "TEXT"},
	}},
	{Name: "partsupp", Columns: []Column{
		{"ps_partkey", "INT"},
		{"ps_suppkey", "INT"},
		{"ps_availqty", "INT"},
		{"ps_supplycost", "DECIMAL(15,2)"},
		{"ps_comment", "TEXT"},
	}},
	{Name: "customer", Columns: []Column{
		{"c_custkey", "INT"},
		{"c_name", "TEXT"},
		{"c_address", "TEXT"},
		{"c_nationkey", "INT"},
		{"c_phone", "TEXT"},
		{"c_acctbal", "DECIMAL(15,2)"},
		{"c_mktsegment", "TEXT"},
		{"c_comment", "TEXT"},
	}},
	{Name: "orders", Columns: []Column{
		{"o_orderkey", "INT"},
		{"o_custkey", "INT"},
		{"o_orderstatus", "TEXT"},
		{"o_totalprice", "DECIMAL(15,2)"},
		{"o_orderdate", "DATE"},
		{"o_orderpriority", "TEXT"},
		{"o_clerk", "TEXT"},
		{"o_shippriority", "INT"},
		{"o_comment", "TEXT"},
	}},
	{Name: "lineitem", Columns: []Column{
		{"l_orderkey", "INT"},
		{"l_partkey", "INT"},
		{"l_suppkey", "INT"},
		{"l_linenumber", "INT"},
		{"l_quantity", "DECIMAL(15,2)"},
		{"l_extendedprice", "DECIMAL(15,2)"},
		{"l_discount", "DECIMAL(15,2)"},
		{"l_tax", "DECIMAL(15,2)"},
		{"l_returnflag", "TEXT"},
		{"l_linestatus", "TEXT"},
		{"l_shipdate", "DATE"},
		{"l_commitdate", "DATE"},
		{"l_receiptdate", "DATE"},
		{"l_shipinstruct", "TEXT"},
		{"l_shipmode", "TEXT"},
		{"l_comment", "TEXT"},
	}},
}
